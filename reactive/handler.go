package reactive

// Handler receives payloads dispatched through Runtime.QueueEvent. The caller keeps the
// Handler alive; queued events only hold it weakly.
type Handler struct {
	fn func(payload any)
}

// NewHandler wraps fn.
func NewHandler(fn func(payload any)) *Handler {
	return &Handler{fn: fn}
}

// Close stops delivery, including events already queued.
func (h *Handler) Close() {
	h.fn = nil
}

// Closed reports whether Close was called.
func (h *Handler) Closed() bool {
	return h.fn == nil
}
