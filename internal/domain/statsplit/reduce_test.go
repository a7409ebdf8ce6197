package statsplit

import (
	"errors"
	"testing"

	"github.com/riskibarqy/mlb-stats/internal/domain/omit"
)

func TestSequence_PreservesOrder(t *testing.T) {
	t.Parallel()

	var seq Sequence[monthHit]
	in := []monthHit{{Month: 6}, {Month: 4}, {Month: 5}}
	if err := seq.Reduce(in); err != nil {
		t.Fatalf("reduce: %v", err)
	}
	for i, split := range seq {
		if split.Month != in[i].Month {
			t.Fatalf("position %d: got month=%d want=%d", i, split.Month, in[i].Month)
		}
	}
}

func TestSingle_RejectsMoreThanOne(t *testing.T) {
	t.Parallel()

	var single Single[hitSplit]
	if err := single.Reduce([]hitSplit{{Season: "2023"}, {Season: "2024"}}); !errors.Is(err, ErrTooManyEntries) {
		t.Fatalf("expected ErrTooManyEntries, got %v", err)
	}
	if err := single.Reduce([]hitSplit{{Season: "2023"}}); err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if got, ok := single.Get(); !ok || got.Season != "2023" {
		t.Fatalf("unexpected single %+v found=%t", got, ok)
	}
}

func TestMap_DuplicateKey(t *testing.T) {
	t.Parallel()

	var m Map[int, monthHit]
	err := m.Reduce([]monthHit{{Month: 4}, {Month: 5}, {Month: 4}})

	var dup *DuplicateEntryError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateEntryError, got %v", err)
	}
	if dup.Key != "4" {
		t.Fatalf("expected duplicate key 4, got %q", dup.Key)
	}
}

func TestMap_EmptyInputIsEmptyMap(t *testing.T) {
	t.Parallel()

	var m Map[int, monthHit]
	if err := m.Reduce(nil); err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty map, got %d entries", len(m))
	}
}

func TestSortedKeys(t *testing.T) {
	t.Parallel()

	var m Map[int, monthHit]
	if err := m.Reduce([]monthHit{{Month: 9}, {Month: 4}, {Month: 7}}); err != nil {
		t.Fatalf("reduce: %v", err)
	}
	keys := SortedKeys(m)
	if len(keys) != 3 || keys[0] != 4 || keys[1] != 7 || keys[2] != 9 {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestNestedMap_DuplicateWithinBucketOnly(t *testing.T) {
	t.Parallel()

	var m NestedMap[string, int64, teamSeasonHit]
	ok := []teamSeasonHit{{Season: "2022", TeamID: 1}, {Season: "2023", TeamID: 1}}
	if err := m.Reduce(ok); err != nil {
		t.Fatalf("same inner key in different buckets must be allowed: %v", err)
	}

	err := m.Reduce([]teamSeasonHit{{Season: "2023", TeamID: 1}, {Season: "2023", TeamID: 1}})
	var dup *DuplicateEntryError
	if !errors.As(err, &dup) || dup.Key != "2023/1" {
		t.Fatalf("expected duplicate 2023/1, got %v", err)
	}
}

func TestHomeAway_Violations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		splits []homeAwayHit
		want   error
	}{
		{name: "two home", splits: []homeAwayHit{{Home: true}, {Home: true}}, want: ErrDuplicateHome},
		{name: "two away", splits: []homeAwayHit{{}, {}}, want: ErrDuplicateAway},
		{name: "three", splits: []homeAwayHit{{Home: true}, {}, {}}, want: ErrNotLen2},
		{name: "one", splits: []homeAwayHit{{Home: true}}, want: ErrNotLen2},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var pair HomeAway[homeAwayHit]
			if err := pair.Reduce(tc.splits); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestWinLoss_Partition(t *testing.T) {
	t.Parallel()

	var pair WinLoss[winLossHit]
	if err := pair.Reduce([]winLossHit{{Win: true}, {Win: true}}); !errors.Is(err, ErrDuplicateWin) {
		t.Fatalf("expected ErrDuplicateWin, got %v", err)
	}
	if err := pair.Reduce([]winLossHit{{}, {}}); !errors.Is(err, ErrDuplicateLoss) {
		t.Fatalf("expected ErrDuplicateLoss, got %v", err)
	}

	loss := winLossHit{Win: false}
	loss.Stats.Hits = omit.Of(3)
	win := winLossHit{Win: true}
	win.Stats.Hits = omit.Of(8)
	if err := pair.Reduce([]winLossHit{loss, win}); err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if pair.Win.Stats.Hits.Or(0) != 8 || pair.Loss.Stats.Hits.Or(0) != 3 {
		t.Fatalf("unexpected partition %+v", pair)
	}
}
