package repo

import (
	"testing"

	"github.com/rogerio-castellano/sweet-shop/internal/models"
)

func TestSummarize(t *testing.T) {
	st := Summarize([]models.Sweet{
		newSweet("Choco Bar", "Chocolate", "5.50", 10),
		newSweet("Gummy Bears", "Candy", "2.25", 40),
		newSweet("Truffle", "Chocolate", "12.00", 0),
		newSweet("Lollipop", "Candy", "1.00", 40),
	})

	if st.TotalSweets != 4 || st.TotalUnits != 90 || st.OutOfStock != 1 || st.Categories != 2 {
		t.Errorf("unexpected counts %+v", st)
	}
	if got := st.InventoryValue.StringFixed(2); got != "185.00" {
		t.Errorf("expected inventory value 185.00, got %s", got)
	}
	if st.MostStocked.Name != "Gummy Bears" {
		t.Errorf("expected Gummy Bears to lead on ties, got %q", st.MostStocked.Name)
	}

	empty := Summarize(nil)
	if empty.TotalSweets != 0 || !empty.InventoryValue.IsZero() {
		t.Errorf("unexpected empty stats %+v", empty)
	}
}
