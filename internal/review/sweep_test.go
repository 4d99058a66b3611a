package review

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/vampirenirmal/redline/internal/agent"
	"github.com/vampirenirmal/redline/internal/schema"
)

func TestSweep(t *testing.T) {
	o := New(agent.NewMockClient())

	var acts []map[string]any
	for i := 1; i <= 5; i++ {
		raw := rawAct(fmt.Sprintf("Act %d text.", i))
		raw["id"] = fmt.Sprintf("act-%d", i)
		acts = append(acts, raw)
	}

	results, err := o.Sweep(context.Background(), acts, schema.PersonaDevelopmentalEditor, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 5 {
		t.Fatalf("results = %d, want 5", len(results))
	}
	for i, r := range results {
		if r.ActID != fmt.Sprintf("act-%d", i+1) {
			t.Errorf("result %d actId = %q (input order must be preserved)", i, r.ActID)
		}
		if len(r.Passes) != 1 {
			t.Errorf("result %d has %d passes", i, len(r.Passes))
		}
	}
}

func TestSweepEmptyInput(t *testing.T) {
	o := New(agent.NewMockClient())
	results, err := o.Sweep(context.Background(), nil, schema.PersonaDevelopmentalEditor, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("results = %d, want 0", len(results))
	}
}

func TestSweepCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := New(agent.NewMockClient())
	acts := []map[string]any{rawAct("one"), rawAct("two")}

	results, err := o.Sweep(ctx, acts, schema.PersonaDevelopmentalEditor, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(results) != 0 {
		t.Fatalf("cancelled sweep should return no partial passes, got %d", len(results))
	}
}

func TestSweepDegradedActsStillComplete(t *testing.T) {
	mock := agent.NewMockClient()
	mock.Err = errors.New("backend down")
	o := New(mock)

	acts := []map[string]any{rawAct("one"), rawAct("two")}
	results, err := o.Sweep(context.Background(), acts, schema.PersonaDevelopmentalEditor, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	for _, r := range results {
		if len(r.Passes) != 1 || len(r.Passes[0].Suggestions) != 0 {
			t.Errorf("expected degraded pass per act, got %+v", r)
		}
	}
}
