package service

import (
	"context"
	"testing"

	"parking_app/internal/storage"
)

func TestNotificationsSeedAndMarkAllRead(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	svc := NewNotificationService(kv, nil)

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 || UnreadCount(items) != 2 {
		t.Fatalf("seed = %d items, %d unread", len(items), UnreadCount(items))
	}

	items, err = svc.MarkAllRead(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if UnreadCount(items) != 0 {
		t.Errorf("unread after mark all = %d", UnreadCount(items))
	}

	again, _ := NewNotificationService(kv, nil).List(ctx)
	if len(again) != 3 || UnreadCount(again) != 0 {
		t.Errorf("read state not persisted: %+v", again)
	}
}
