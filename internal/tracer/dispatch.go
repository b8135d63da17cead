package tracer

import (
	"runtime"
	"sync"
)

// tileSize matches the compute dispatch granularity: one 16x16 tile per
// work item.
const tileSize = 16

// Renderer executes the kernel over an accumulator. It owns the worker pool
// and the grow-only packed plane buffer.
type Renderer struct {
	workers int
	planes  PlaneBuffer
}

// NewRenderer returns a renderer with one worker per CPU.
func NewRenderer() *Renderer {
	return &Renderer{workers: runtime.NumCPU()}
}

type tile struct {
	x0, y0, x1, y1 int
}

// Dispatch runs one frame of the kernel: every pixel of the accumulator gets
// one new sample of the scene described by info and planes, blended in at
// the frame count carried in info.AccumulatedFrames. The accumulator is
// written tile-exclusively, so workers never share pixels.
func (r *Renderer) Dispatch(info GpuSceneInfo, planes []GpuPlane, acc *Accumulator) {
	r.planes.Set(planes)
	info.PlaneCount = uint32(len(planes))

	w, h := acc.Width(), acc.Height()
	tiles := make(chan tile, r.workers)

	var wg sync.WaitGroup
	wg.Add(r.workers)
	for i := 0; i < r.workers; i++ {
		go func() {
			defer wg.Done()
			for t := range tiles {
				for y := t.y0; y < t.y1; y++ {
					for x := t.x0; x < t.x1; x++ {
						sample := renderPixel(&info, planes, x, y, w, h)
						acc.blend(x, y, sample, info.AccumulatedFrames)
					}
				}
			}
		}()
	}

	for y0 := 0; y0 < h; y0 += tileSize {
		for x0 := 0; x0 < w; x0 += tileSize {
			tiles <- tile{x0: x0, y0: y0, x1: min(x0+tileSize, w), y1: min(y0+tileSize, h)}
		}
	}
	close(tiles)
	wg.Wait()
	acc.frames++
}
