package stream

import (
	"testing"

	apperrors "github.com/kbukum/pipekit/errors"
)

func TestNew(t *testing.T) {
	item, err := New(1, "text", "hello")
	if err != nil {
		t.Fatal(err)
	}
	if item.Seq != 1 {
		t.Errorf("expected seq 1, got %d", item.Seq)
	}
	if item.Resource != "text" {
		t.Errorf("expected resource 'text', got %q", item.Resource)
	}
	if item.Text() != "hello" {
		t.Errorf("expected payload 'hello', got %q", item.Text())
	}
}

func TestNew_ZeroSeq(t *testing.T) {
	_, err := New(0, "text", "hello")
	if err == nil {
		t.Fatal("expected error for seq 0")
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeInvalidItem) {
		t.Errorf("expected INVALID_ITEM, got %v", err)
	}
}

func TestNew_NegativeSeq(t *testing.T) {
	if _, err := New(-3, "text", "hello"); err == nil {
		t.Fatal("expected error for negative seq")
	}
}

func TestNew_EmptyResource(t *testing.T) {
	_, err := New(1, "", "hello")
	if err == nil {
		t.Fatal("expected error for empty resource")
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeInvalidItem) {
		t.Errorf("expected INVALID_ITEM, got %v", err)
	}
}

func TestItem_TextNonString(t *testing.T) {
	item := Item{Seq: 1, Resource: "img", Data: 42}
	if item.Text() != "" {
		t.Errorf("expected empty text for non-string payload, got %q", item.Text())
	}
}

func TestItem_WithData(t *testing.T) {
	item := Item{Seq: 7, Resource: "app.log", Data: "error"}
	out := item.WithData("ERROR")
	if out.Seq != 7 || out.Resource != "app.log" {
		t.Errorf("expected metadata preserved, got %s", out)
	}
	if out.Text() != "ERROR" {
		t.Errorf("expected payload 'ERROR', got %q", out.Text())
	}
	if item.Text() != "error" {
		t.Errorf("expected original payload untouched, got %q", item.Text())
	}
}

func TestItem_String(t *testing.T) {
	item := Item{Seq: 3, Resource: "app.log", Data: "x"}
	if item.String() != "app.log:3" {
		t.Errorf("expected 'app.log:3', got %q", item.String())
	}
}
