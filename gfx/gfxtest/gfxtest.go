// Package gfxtest provides a scripted in-memory gfx backend. Every object it
// creates or destroys is written to a shared Journal, so tests can assert on
// creation and teardown order without a GPU.
package gfxtest

import (
	"fmt"
	"sync"

	"github.com/vkngwrapper/rendercontext/gfx"
)

// Handle is the opaque handle type handed out by this backend.
type Handle struct {
	Kind string
	ID   int
}

func (h Handle) String() string { return fmt.Sprintf("%s#%d", h.Kind, h.ID) }

// Journal records backend calls in order.
type Journal struct {
	mu      sync.Mutex
	entries []string
	live    map[Handle]bool
}

func (j *Journal) record(entry string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
}

func (j *Journal) create(h Handle) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.live == nil {
		j.live = make(map[Handle]bool)
	}
	j.live[h] = true
	j.entries = append(j.entries, "create "+h.String())
}

func (j *Journal) destroy(h Handle) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.live[h] {
		j.entries = append(j.entries, "destroy-invalid "+h.String())
		return
	}
	delete(j.live, h)
	j.entries = append(j.entries, "destroy "+h.String())
}

// Entries returns a copy of every recorded entry.
func (j *Journal) Entries() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

// Filter returns the entries starting with prefix.
func (j *Journal) Filter(prefix string) []string {
	var out []string
	for _, e := range j.Entries() {
		if len(e) >= len(prefix) && e[:len(prefix)] == prefix {
			out = append(out, e)
		}
	}
	return out
}

// Live returns the handles created and not yet destroyed.
func (j *Journal) Live() []Handle {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []Handle
	for h := range j.live {
		out = append(out, h)
	}
	return out
}

type counter struct {
	mu   sync.Mutex
	next map[string]int
}

func (c *counter) handle(kind string) Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.next == nil {
		c.next = make(map[string]int)
	}
	c.next[kind]++
	return Handle{Kind: kind, ID: c.next[kind]}
}

func resultErr(call string, err error) error {
	return &gfx.BackendError{Call: call, Result: "VK_ERROR_INITIALIZATION_FAILED", Err: err}
}
