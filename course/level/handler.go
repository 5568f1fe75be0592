package level

import "github.com/go-gl/mathgl/mgl64"

// Handler is notified of the outcome of every block a Builder generates.
// Handler methods are called synchronously from the generating goroutine.
type Handler interface {
	// HandleBlock is called after op was executed for the block at index.
	HandleBlock(ctx *Context, index int, op Operation)
	// HandleSkip is called when no Operation had a positive weight for the
	// block at index.
	HandleSkip(ctx *Context, index int)
}

// NopHandler implements Handler and does nothing.
type NopHandler struct{}

func (NopHandler) HandleBlock(*Context, int, Operation) {}
func (NopHandler) HandleSkip(*Context, int)             {}

// PathRecorder is a Handler recording the cursor after every block.
type PathRecorder struct {
	// Path holds the cursor after each executed block.
	Path []mgl64.Vec2
	// Skipped holds the indices of skipped blocks.
	Skipped []int
}

func (p *PathRecorder) HandleBlock(ctx *Context, _ int, _ Operation) {
	p.Path = append(p.Path, ctx.Cursor)
}

func (p *PathRecorder) HandleSkip(_ *Context, index int) {
	p.Skipped = append(p.Skipped, index)
}

// multiHandler fans calls out to several Handlers.
type multiHandler []Handler

func (m multiHandler) HandleBlock(ctx *Context, index int, op Operation) {
	for _, h := range m {
		h.HandleBlock(ctx, index, op)
	}
}

func (m multiHandler) HandleSkip(ctx *Context, index int) {
	for _, h := range m {
		h.HandleSkip(ctx, index)
	}
}

// MultiHandler returns a Handler calling all handlers passed in order.
func MultiHandler(handlers ...Handler) Handler {
	return multiHandler(handlers)
}
