package memory_test

import (
	"testing"

	"github.com/aretw0/dfsm/pkg/adapters/memory"
	"github.com/aretw0/dfsm/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunMachineStoreContract(t, store)
}
