package service

import "testing"

func TestSnapshotWorker_EnqueueLatestWins(t *testing.T) {
	worker := NewSnapshotWorker(nil)

	worker.Enqueue("user-1", 100)
	worker.Enqueue("user-1", 120)
	worker.Enqueue("user-2", 50)

	worker.mu.Lock()
	defer worker.mu.Unlock()
	if len(worker.pending) != 2 {
		t.Fatalf("pending has %d entries, want 2", len(worker.pending))
	}
	if worker.pending["user-1"] != 120 {
		t.Errorf("pending[user-1] = %d, want latest value 120", worker.pending["user-1"])
	}
	if worker.pending["user-2"] != 50 {
		t.Errorf("pending[user-2] = %d, want 50", worker.pending["user-2"])
	}
}
