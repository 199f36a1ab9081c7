// Package stream processes streams of concatenated XML documents in
// parallel. Feeds deliver many <article> manuscripts in one file; the
// splitter cuts the stream on element boundaries without parsing, and the
// processor hands each chunk to a worker. Workers get independent chunks,
// so each can build its own document tree and query evaluator with no
// shared state.
package stream

import (
	"bufio"
	"context"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxBufferSize = 1 << 24 // 16MB, soft limit
	defaultMaxTokenSize  = 1 << 26 // 64MB, hard limit, must exceed the buffer size
)

// ProcessFunc transforms one chunk (a single serialized document) into
// output bytes. A nil result writes nothing.
type ProcessFunc func([]byte) ([]byte, error)

// Option configures a Processor.
type Option func(*Processor)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.numWorkers = n
		}
	}
}

// WithMaxTokenSize sets the hard per-document size limit.
func WithMaxTokenSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.maxTokenSize = size
		}
	}
}

// WithMaxBufferSize sets the soft buffer size for the splitter.
func WithMaxBufferSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.maxBufferSize = size
		}
	}
}

// WithSplitFunc sets the split function, e.g. TagSplitter.
func WithSplitFunc(f bufio.SplitFunc) Option {
	return func(p *Processor) {
		p.splitFunc = f
	}
}

// Processor fans chunks out to workers and serializes their output.
type Processor struct {
	splitFunc     bufio.SplitFunc
	processFunc   ProcessFunc
	numWorkers    int
	maxBufferSize int
	maxTokenSize  int
}

// NewProcessor creates a Processor that splits on lines by default.
func NewProcessor(processFunc ProcessFunc, opts ...Option) *Processor {
	p := &Processor{
		splitFunc:     bufio.ScanLines,
		processFunc:   processFunc,
		numWorkers:    runtime.NumCPU(),
		maxBufferSize: defaultMaxBufferSize,
		maxTokenSize:  defaultMaxTokenSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process reads chunks from r, processes them in parallel and writes the
// results to w. Output order follows completion order, not input order.
func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	scanner := bufio.NewScanner(bufio.NewReader(r))
	scanner.Split(p.splitFunc)
	scanner.Buffer(make([]byte, 0, p.maxBufferSize), p.maxTokenSize)
	workChan := make(chan []byte, p.numWorkers*2)
	var writeMu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(workChan)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			token := scanner.Bytes()
			data := make([]byte, len(token))
			copy(data, token)
			select {
			case workChan <- data:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return scanner.Err()
	})
	for i := 0; i < p.numWorkers; i++ {
		g.Go(func() error {
			for data := range workChan {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				result, err := p.processFunc(data)
				if err != nil {
					return err
				}
				if result != nil {
					writeMu.Lock()
					_, err := bw.Write(result)
					writeMu.Unlock()
					if err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	return g.Wait()
}
