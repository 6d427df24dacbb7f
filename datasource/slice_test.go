package datasource

import (
	"context"
	"reflect"
	"testing"
)

func TestSliceSource_Fetch(t *testing.T) {
	src := NewSliceSource("nums", []int{1, 2, 3, 4, 5, 6, 7})
	ctx := context.Background()

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []int
	}{
		{"first page", 0, 3, []int{1, 2, 3}},
		{"middle page", 3, 3, []int{4, 5, 6}},
		{"short last page", 6, 3, []int{7}},
		{"offset at end", 7, 3, []int{}},
		{"offset past end", 100, 3, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := src.Fetch(ctx, tt.offset, tt.limit)
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Fetch(%d, %d) = %v, want %v", tt.offset, tt.limit, got, tt.want)
			}
			if len(got) > tt.limit {
				t.Errorf("Fetch returned %d items, limit was %d", len(got), tt.limit)
			}
		})
	}
}

func TestSliceSource_FetchValidation(t *testing.T) {
	src := NewSliceSource("nums", []int{1, 2, 3})
	ctx := context.Background()

	if _, err := src.Fetch(ctx, -1, 5); err == nil {
		t.Error("Fetch with negative offset succeeded")
	}
	if _, err := src.Fetch(ctx, 0, 0); err == nil {
		t.Error("Fetch with zero limit succeeded")
	}
}

func TestSliceSource_SnapshotIsolation(t *testing.T) {
	backing := []int{3, 1, 2}
	src := NewSliceSource("nums", backing)

	backing[0] = 99

	got, _ := src.Fetch(context.Background(), 0, 3)
	if !reflect.DeepEqual(got, []int{3, 1, 2}) {
		t.Errorf("snapshot affected by backing mutation: %v", got)
	}
}

func TestSliceSource_FilterAndSort(t *testing.T) {
	src := NewSliceSource("nums", []int{5, 2, 8, 1, 6, 3},
		WithFilter[int](func(v int) bool { return v%2 == 0 }),
		WithSort[int](func(a, b int) bool { return a < b }),
	)

	got, _ := src.Fetch(context.Background(), 0, 10)
	if !reflect.DeepEqual(got, []int{2, 6, 8}) {
		t.Errorf("filtered+sorted snapshot = %v, want [2 6 8]", got)
	}

	total, _ := src.Count(context.Background())
	if total != 3 {
		t.Errorf("Count = %d, want 3 (after filter)", total)
	}
}

func TestSliceSource_Identifier(t *testing.T) {
	a := NewSliceSource("users", []int{1, 2, 3})
	b := NewSliceSource("users", []int{1, 2, 3})
	c := NewSliceSource("users", []int{1, 2, 3}, WithConfigTag[int]("sorted-desc"))
	d := NewSliceSource("orders", []int{1, 2, 3})

	if a.Identifier() != b.Identifier() {
		t.Error("identical configurations produced different identifiers")
	}
	if a.Identifier() == c.Identifier() {
		t.Error("different config tags share an identifier")
	}
	if a.Identifier() == d.Identifier() {
		t.Error("different names share an identifier")
	}
}

func TestSliceSource_Async(t *testing.T) {
	src := NewSliceSource("nums", []int{1, 2, 3, 4})
	ctx := context.Background()

	fetch := <-src.FetchAsync(ctx, 0, 2)
	if fetch.Err != nil || !reflect.DeepEqual(fetch.Items, []int{1, 2}) {
		t.Errorf("FetchAsync = %+v", fetch)
	}

	count := <-src.CountAsync(ctx)
	if count.Err != nil || count.Total != 4 {
		t.Errorf("CountAsync = %+v", count)
	}
}

func TestFuncs_Adapter(t *testing.T) {
	src := Funcs[string]{
		FetchFunc: func(ctx context.Context, offset, limit int) ([]string, error) {
			return []string{"a"}, nil
		},
		CountFunc: func(ctx context.Context) (int, error) { return 1, nil },
		ID:        "funcs",
	}

	var _ DataSource[string] = src

	items, err := src.Fetch(context.Background(), 0, 1)
	if err != nil || len(items) != 1 {
		t.Errorf("Fetch = (%v, %v)", items, err)
	}
	if src.Identifier() != "funcs" {
		t.Errorf("Identifier = %q", src.Identifier())
	}

	res := <-src.FetchAsync(context.Background(), 0, 1)
	if res.Err != nil || len(res.Items) != 1 {
		t.Errorf("FetchAsync = %+v", res)
	}
}
