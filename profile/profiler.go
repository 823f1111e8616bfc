package profile

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"
)

// ErrCooldown is returned when a capture was requested too soon after the last one
var ErrCooldown = errors.New("capture on cooldown")

// ErrBusy is returned while a capture is still running
var ErrBusy = errors.New("already profiling")

// Profiler captures a CPU profile and an execution trace when the simulation
// falls behind its clock
type Profiler struct {
	mu          sync.Mutex
	isProfiling bool
	lastCapture time.Time
	cooldown    time.Duration
	duration    time.Duration
	dir         string
	logger      *log.Logger
	done        chan struct{}
}

// New creates a profiler writing into dir
func New(dir string, cooldown, duration time.Duration, logger *log.Logger) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profiles dir: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Profiler{
		cooldown: cooldown,
		duration: duration,
		dir:      dir,
		logger:   logger,
	}, nil
}

// Dir returns the output directory
func (p *Profiler) Dir() string {
	return p.dir
}

// CaptureStall starts a background capture named after reason. It returns
// ErrCooldown or ErrBusy instead of overlapping captures.
func (p *Profiler) CaptureStall(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return ErrBusy
	}
	if since := time.Since(p.lastCapture); !p.lastCapture.IsZero() && since < p.cooldown {
		return fmt.Errorf("%w (last capture was %v ago)", ErrCooldown, since.Round(time.Millisecond))
	}

	p.isProfiling = true
	p.lastCapture = time.Now()
	p.done = make(chan struct{})
	base := fmt.Sprintf("stall-%s-%s", p.lastCapture.Format("20060102-150405"), reason)

	go func(done chan struct{}) {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
			close(done)
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPU(base, p.duration); err != nil {
				p.logger.Printf("cpu profile: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(base, p.duration); err != nil {
				p.logger.Printf("trace: %v", err)
			}
		}()
		wg.Wait()

		p.summarize(base)
	}(p.done)

	return nil
}

// Wait blocks until the running capture, if any, has finished
func (p *Profiler) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

// IsProfiling reports whether a capture is in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) captureCPU(base string, d time.Duration) error {
	path := filepath.Join(p.dir, base+".cpu.prof")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer f.Close()

	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(d)
	pprof.StopCPUProfile()

	p.logger.Printf("CPU profile saved to %s", path)
	return nil
}

func (p *Profiler) captureTrace(base string, d time.Duration) error {
	path := filepath.Join(p.dir, base+".trace")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer f.Close()

	if err := trace.Start(f); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(d)
	trace.Stop()

	p.logger.Printf("trace saved to %s", path)
	return nil
}

func (p *Profiler) summarize(base string) {
	path := filepath.Join(p.dir, base+".cpu.prof")
	info, err := os.Stat(path)
	if err != nil {
		p.logger.Printf("could not analyze profile: %v", err)
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Printf("profile %s (%.2f KB): alloc=%dKB sys=%dKB gc=%d heapObjects=%d; view with go tool pprof -http=:8080 %s",
		base, float64(info.Size())/1024, m.Alloc/1024, m.Sys/1024, m.NumGC, m.HeapObjects, path)
}

// StartCPU profiles the whole process into path until the returned stop
// function is called
func StartCPU(path string) (stop func() error, err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start CPU profile: %w", err)
	}
	return func() error {
		pprof.StopCPUProfile()
		return f.Close()
	}, nil
}
