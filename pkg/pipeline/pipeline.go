package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
)

// EpisodeSource produces the episodes to process (e.g. an RSS feed)
type EpisodeSource interface {
	// Episodes returns the episodes to process, already filtered and windowed
	Episodes(ctx context.Context) ([]domain.Episode, error)
}

// EpisodeProcessor processes one episode end to end and returns its result
type EpisodeProcessor interface {
	Process(ctx context.Context, episode domain.Episode) (*domain.EpisodeResult, error)
}

// ResultSink persists an episode result. Store implementations satisfy this
// directly; a nil sink means file-only runs.
type ResultSink interface {
	SaveResult(ctx context.Context, result *domain.EpisodeResult) error
}

// Summary counts what happened during a run
type Summary struct {
	Episodes  int // episodes emitted by the source
	Processed int // episodes processed successfully
	Failed    int // episodes that failed (logged and skipped)
	Hands     int // total hands detected across processed episodes
}

// Pipeline wires an episode source to processor workers and an optional
// result sink. Per-episode failures are logged and skipped; they never abort
// the run.
type Pipeline struct {
	source    EpisodeSource
	processor EpisodeProcessor
	sink      ResultSink // optional
	workers   int

	mu      sync.Mutex
	summary Summary
}

// NewPipeline creates a pipeline with the given number of processor workers.
// workers <= 0 is coerced to 1.
func NewPipeline(source EpisodeSource, processor EpisodeProcessor, sink ResultSink, workers int) *Pipeline {
	if workers <= 0 {
		workers = 1
	}
	return &Pipeline{
		source:    source,
		processor: processor,
		sink:      sink,
		workers:   workers,
	}
}

// Run executes the pipeline:
//  1. The source produces episodes onto a buffered channel
//  2. Processor workers consume episodes and emit results
//  3. A sink worker persists each result (when a sink is configured)
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	if p.source == nil || p.processor == nil {
		return Summary{}, fmt.Errorf("pipeline needs a source and a processor")
	}

	episodes, err := p.source.Episodes(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("fetch episodes: %w", err)
	}

	p.mu.Lock()
	p.summary = Summary{Episodes: len(episodes)}
	p.mu.Unlock()

	log.Printf("Pipeline: processing %d episodes with %d workers", len(episodes), p.workers)

	episodeChan := make(chan domain.Episode, p.workers*2)
	resultChan := make(chan *domain.EpisodeResult, p.workers*2)

	var sinkWg sync.WaitGroup
	sinkWg.Add(1)
	go p.runSink(ctx, resultChan, &sinkWg)

	var workerWg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		workerWg.Add(1)
		go p.runWorker(ctx, i, episodeChan, resultChan, &workerWg)
	}

	// Feed episodes; stop on cancellation
	feedErr := p.feedEpisodes(ctx, episodes, episodeChan)
	close(episodeChan)

	workerWg.Wait()
	close(resultChan)
	sinkWg.Wait()

	p.mu.Lock()
	summary := p.summary
	p.mu.Unlock()

	return summary, feedErr
}

func (p *Pipeline) feedEpisodes(ctx context.Context, episodes []domain.Episode, episodeChan chan<- domain.Episode) error {
	for _, episode := range episodes {
		select {
		case episodeChan <- episode:
		case <-ctx.Done():
			log.Printf("Pipeline: context cancelled while feeding episodes")
			return ctx.Err()
		}
	}
	return nil
}

// runWorker processes episodes until the channel closes or the context is cancelled
func (p *Pipeline) runWorker(ctx context.Context, workerID int, episodeChan <-chan domain.Episode, resultChan chan<- *domain.EpisodeResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case episode, ok := <-episodeChan:
			if !ok {
				return
			}

			log.Printf("Worker %d: processing episode: %s", workerID, episode.Title)
			result, err := p.processor.Process(ctx, episode)
			if err != nil {
				log.Printf("Worker %d: ERROR processing episode %q: %v", workerID, episode.Title, err)
				p.record(func(s *Summary) { s.Failed++ })
				continue
			}

			log.Printf("Worker %d: episode %q done, %d hands detected", workerID, episode.Title, result.HandsCount)
			p.record(func(s *Summary) {
				s.Processed++
				s.Hands += result.HandsCount
			})

			select {
			case resultChan <- result:
			case <-ctx.Done():
				return
			}

		case <-ctx.Done():
			log.Printf("Worker %d: context cancelled", workerID)
			return
		}
	}
}

// runSink persists results until the result channel closes
func (p *Pipeline) runSink(ctx context.Context, resultChan <-chan *domain.EpisodeResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for result := range resultChan {
		if p.sink == nil {
			continue
		}
		if err := p.sink.SaveResult(ctx, result); err != nil {
			log.Printf("Sink: ERROR saving result for %q: %v", result.Episode.Title, err)
		}
	}
}

func (p *Pipeline) record(update func(*Summary)) {
	p.mu.Lock()
	update(&p.summary)
	p.mu.Unlock()
}
