package repository

import (
	"strings"
	"testing"

	"github.com/DmitriiShilkin/creative-hub/internal/models"
)

// The grouped listing queries are the easiest place to regress: selecting a
// column that is missing from the GROUP BY either fails outright or, worse,
// silently duplicates rows once a join fans out. These tests pin the clause
// construction down.

func TestEventGroupByCoversSelectedColumns(t *testing.T) {
	group := make(map[string]bool)
	for _, col := range eventGroupColumns() {
		if group[col] {
			t.Errorf("duplicate group-by column %q", col)
		}
		group[col] = true
	}

	for _, col := range eventItemColumns {
		if !group[col] {
			t.Errorf("selected item column %q missing from group-by", col)
		}
	}
	for _, col := range eventCheckpointColumns {
		if !group[col] {
			t.Errorf("selected checkpoint column %q missing from group-by", col)
		}
	}
}

func TestJobGroupByCoversSelectedColumns(t *testing.T) {
	group := make(map[string]bool)
	for _, col := range jobGroupColumns() {
		if group[col] {
			t.Errorf("duplicate group-by column %q", col)
		}
		group[col] = true
	}

	for _, col := range jobItemColumns {
		if !group[col] {
			t.Errorf("selected item column %q missing from group-by", col)
		}
	}
	for _, col := range jobCheckpointColumns {
		if !group[col] {
			t.Errorf("selected checkpoint column %q missing from group-by", col)
		}
	}
}

func TestAggregateSelectsAreAggregates(t *testing.T) {
	for _, sel := range append(append([]string{}, eventAggregateSelects...), jobAggregateSelects...) {
		if !strings.Contains(sel, "COUNT(") {
			t.Errorf("non-aggregate expression in aggregate select list: %q", sel)
		}
		if !strings.Contains(sel, "DISTINCT") {
			t.Errorf("aggregate %q must count distinct rows to survive join fan-out", sel)
		}
	}
}

func TestTotalCountOnlyInListSelect(t *testing.T) {
	if !strings.Contains(eventListingSelect(true), "OVER ()") {
		t.Error("list select must compute total_count over the filtered set")
	}
	if strings.Contains(eventListingSelect(false), "OVER ()") {
		t.Error("detail select must not carry the window total")
	}
	if !strings.Contains(jobListingSelect(true), "OVER ()") {
		t.Error("job list select must compute total_count over the filtered set")
	}
	if strings.Contains(jobListingSelect(false), "OVER ()") {
		t.Error("job detail select must not carry the window total")
	}
}

// A checkpoint is joined on exactly one identity axis. Matching both axes at
// once can attach two checkpoint rows to one item for a viewer who browsed
// anonymously before authenticating.
func TestViewerJoinUsesSingleIdentityAxis(t *testing.T) {
	userID := uint(7)

	join, args := eventViewerJoin(models.AuthenticatedViewer(userID, "10.0.0.1"))
	if strings.Contains(join, "ip_address") {
		t.Errorf("authenticated join must not touch ip_address: %q", join)
	}
	if len(args) != 1 || args[0] != userID {
		t.Errorf("authenticated join args = %v, want [%d]", args, userID)
	}

	join, args = eventViewerJoin(models.AnonymousViewer("10.0.0.1"))
	if !strings.Contains(join, "my.user_id IS NULL") {
		t.Errorf("anonymous join must exclude user-keyed checkpoints: %q", join)
	}
	if len(args) != 1 || args[0] != "10.0.0.1" {
		t.Errorf("anonymous join args = %v, want [10.0.0.1]", args)
	}

	join, _ = jobViewerJoin(models.AuthenticatedViewer(userID, "10.0.0.1"))
	if strings.Contains(join, "ip_address") {
		t.Errorf("authenticated job join must not touch ip_address: %q", join)
	}
	join, _ = jobViewerJoin(models.AnonymousViewer("10.0.0.1"))
	if !strings.Contains(join, "my.user_id IS NULL") {
		t.Errorf("anonymous job join must exclude user-keyed checkpoints: %q", join)
	}
}

func TestBudgetSortKeepsNullsLast(t *testing.T) {
	for _, k := range []SortKey{SortBudgetAsc, SortBudgetDesc} {
		if !strings.Contains(k.orderClause(), "NULLS LAST") {
			t.Errorf("%s: budget sort must push NULL budgets last, got %q", k, k.orderClause())
		}
	}
	if strings.Contains(SortNewest.orderClause(), "budget") {
		t.Errorf("default sort must not reference budget: %q", SortNewest.orderClause())
	}
}

func TestCanView(t *testing.T) {
	creator := uint(3)
	other := uint(4)

	tests := []struct {
		name    string
		isDraft bool
		viewer  *uint
		want    bool
	}{
		{"published anonymous", false, nil, true},
		{"published other user", false, &other, true},
		{"draft anonymous", true, nil, false},
		{"draft other user", true, &other, false},
		{"draft creator", true, &creator, true},
	}
	for _, tt := range tests {
		if got := CanView(tt.isDraft, creator, tt.viewer); got != tt.want {
			t.Errorf("%s: CanView = %v, want %v", tt.name, got, tt.want)
		}
	}
}
