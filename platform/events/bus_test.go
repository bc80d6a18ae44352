package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishSyncRunsHandlersInOrder(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var order []int
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, e Event) error {
		order = append(order, 1)
		return nil
	}))
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, e Event) error {
		order = append(order, 2)
		return nil
	}))

	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "test.event"}); err != nil {
		t.Fatalf("PublishSync: %v", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("handlers ran as %v, want [1 2]", order)
	}
}

func TestPublishSyncStopsOnFirstError(t *testing.T) {
	bus := NewInMemoryBus(nil)
	boom := errors.New("boom")

	secondRan := false
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, e Event) error {
		return boom
	}))
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, e Event) error {
		secondRan = true
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "test.event"})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
	if secondRan {
		t.Error("handler after the failing one still ran")
	}
}

func TestPublishIsAsynchronous(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var wg sync.WaitGroup
	wg.Add(1)
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, e Event) error {
		defer wg.Done()
		return nil
	}))

	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "test.event"})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("async handler never ran")
	}
}

func TestPublishWithNoSubscribersIsNoop(t *testing.T) {
	bus := NewInMemoryBus(nil)
	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "nobody.listens"})
	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "nobody.listens"}); err != nil {
		t.Fatalf("PublishSync on empty subscription: %v", err)
	}
}
