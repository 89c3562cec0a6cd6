package protocols

import (
	"sync"
	"testing"

	"github.com/clafollett/agenterra-go/internal/proto"
)

func TestRegistryWithDefaultsRegistersMcp(t *testing.T) {
	r := NewRegistryWithDefaults()
	if !r.IsImplemented(proto.Mcp) {
		t.Fatal("expected mcp to be implemented")
	}
	h, err := r.Get(proto.Mcp)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if h.Protocol() != proto.Mcp {
		t.Fatalf("unexpected handler: %+v", h)
	}
}

func TestRegistryUnregisteredProtocolIsNotImplemented(t *testing.T) {
	r := NewRegistryWithDefaults()
	if r.IsImplemented(proto.A2a) {
		t.Fatal("expected a2a to be unimplemented")
	}
	if _, err := r.Get(proto.A2a); err == nil {
		t.Fatal("expected error getting unregistered protocol")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistryWithDefaults()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = r.Get(proto.Mcp)
		}()
		go func() {
			defer wg.Done()
			r.Register(NewMcpHandler())
		}()
	}
	wg.Wait()
}
