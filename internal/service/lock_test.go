package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	pkgerrors "github.com/akiblasco/SchedulerUBC/pkg/errors"
)

// ── Mock DistributedLock ──

type mockLockBackend struct {
	mu       sync.Mutex
	held     map[string]string
	err      error
	released int
}

func newMockLockBackend() *mockLockBackend {
	return &mockLockBackend{held: make(map[string]string)}
}

func (m *mockLockBackend) AcquireLock(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", false, m.err
	}
	if _, ok := m.held[key]; ok {
		return "", false, nil
	}
	m.held[key] = "token-" + key
	return m.held[key], true, nil
}

func (m *mockLockBackend) ReleaseLock(_ context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[key] == token {
		delete(m.held, key)
		m.released++
	}
	return nil
}

func TestLocker_Distributed(t *testing.T) {
	backend := newMockLockBackend()
	locker := NewLocker(backend, "ubc", time.Second, zap.NewNop())

	unlock, err := locker.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock 应成功: %v", err)
	}
	if _, ok := backend.held["ubc"]; !ok {
		t.Fatal("应以实例名作为锁键")
	}
	unlock()
	if backend.released != 1 || len(backend.held) != 0 {
		t.Error("unlock 应释放分布式锁")
	}
}

func TestLocker_HeldElsewhereTimesOut(t *testing.T) {
	backend := newMockLockBackend()
	backend.held["ubc"] = "other-replica"
	locker := NewLocker(backend, "ubc", 120*time.Millisecond, zap.NewNop())

	_, err := locker.Lock(context.Background())
	if !errors.Is(err, pkgerrors.ErrLockNotAcquired) {
		t.Errorf("期望 ErrLockNotAcquired，实际: %v", err)
	}
}

func TestLocker_ContextCanceled(t *testing.T) {
	backend := newMockLockBackend()
	backend.held["ubc"] = "other-replica"
	locker := NewLocker(backend, "ubc", time.Minute, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := locker.Lock(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("期望 context.Canceled，实际: %v", err)
	}
}

func TestLocker_FallsBackWhenRedisDown(t *testing.T) {
	backend := newMockLockBackend()
	backend.err = errors.New("connection refused")
	locker := NewLocker(backend, "ubc", time.Second, zap.NewNop())

	unlock, err := locker.Lock(context.Background())
	if err != nil {
		t.Fatalf("Redis 不可用时应退化为本地锁: %v", err)
	}
	unlock()
}

func TestLocker_LocalSerializes(t *testing.T) {
	locker := newTestLocker()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background())
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Errorf("同一时刻至多一个持有者，实际 %d", maxSeen)
	}
}

// ── Redis 首次成功、之后出错 ──

type flakyLockBackend struct {
	mu    sync.Mutex
	calls int
}

func (f *flakyLockBackend) AcquireLock(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls == 1 {
		return "token-" + key, true, nil
	}
	return "", false, errors.New("redis: i/o timeout")
}

func (f *flakyLockBackend) ReleaseLock(_ context.Context, _, _ string) error { return nil }

func TestLocker_RedisErrorKeepsLocalExclusion(t *testing.T) {
	locker := NewLocker(&flakyLockBackend{}, "ubc", time.Second, zap.NewNop())

	unlockA, err := locker.Lock(context.Background())
	if err != nil {
		t.Fatalf("首次 Lock 应成功: %v", err)
	}

	acquired := make(chan func(), 1)
	go func() {
		unlockB, err := locker.Lock(context.Background())
		if err != nil {
			t.Error(err)
			close(acquired)
			return
		}
		acquired <- unlockB
	}()

	select {
	case <-acquired:
		t.Fatal("A 仍持有锁时 B 不应获得锁")
	case <-time.After(100 * time.Millisecond):
	}

	unlockA()

	select {
	case unlockB, ok := <-acquired:
		if !ok {
			t.Fatal("A 释放后 B 应获得锁")
		}
		unlockB()
	case <-time.After(time.Second):
		t.Fatal("A 释放后 B 应在超时前获得锁")
	}
}

func TestLocker_RedisErrorWaitIsBounded(t *testing.T) {
	locker := NewLocker(&flakyLockBackend{}, "ubc", 80*time.Millisecond, zap.NewNop())

	unlock, err := locker.Lock(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer unlock()

	if _, err := locker.Lock(context.Background()); !errors.Is(err, pkgerrors.ErrLockNotAcquired) {
		t.Errorf("期望 ErrLockNotAcquired，实际: %v", err)
	}
}

func TestLocker_LocalWaitHonorsTTL(t *testing.T) {
	locker := NewLocker(nil, "ubc", 60*time.Millisecond, zap.NewNop())

	unlock, err := locker.Lock(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer unlock()

	start := time.Now()
	if _, err := locker.Lock(context.Background()); !errors.Is(err, pkgerrors.ErrLockNotAcquired) {
		t.Errorf("期望 ErrLockNotAcquired，实际: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("本地等待应受 ttl 约束，实际等待 %v", elapsed)
	}
}

func TestLocker_LocalWaitHonorsContext(t *testing.T) {
	locker := NewLocker(nil, "ubc", time.Minute, zap.NewNop())

	unlock, err := locker.Lock(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, err := locker.Lock(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("期望 context.DeadlineExceeded，实际: %v", err)
	}
}

func TestLocker_ReleasedAfterTimeout(t *testing.T) {
	backend := newMockLockBackend()
	backend.held["ubc"] = "other-replica"
	locker := NewLocker(backend, "ubc", 60*time.Millisecond, zap.NewNop())

	if _, err := locker.Lock(context.Background()); !errors.Is(err, pkgerrors.ErrLockNotAcquired) {
		t.Fatalf("期望 ErrLockNotAcquired，实际: %v", err)
	}

	// 超时路径必须归还进程内信号量
	delete(backend.held, "ubc")
	unlock, err := locker.Lock(context.Background())
	if err != nil {
		t.Fatalf("Redis 锁释放后应可再次获得: %v", err)
	}
	unlock()
}
