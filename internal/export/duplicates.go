package export

import (
	"sync"

	"github.com/dimviana/Gestor-de-Boleto/constants"
	"github.com/dimviana/Gestor-de-Boleto/internal/core"
	"github.com/dimviana/Gestor-de-Boleto/internal/core/boleto"
)

// DuplicateTracker remembers barcodes across outcomes. Safe for concurrent use.
type DuplicateTracker struct {
	mu   sync.Mutex
	seen map[string]string
}

func NewDuplicateTracker() *DuplicateTracker {
	return &DuplicateTracker{seen: map[string]string{}}
}

// Check flags out as DUPLICATE when its barcode was already seen and
// reports whether it did. Outcomes without a barcode are left alone.
func (d *DuplicateTracker) Check(out *core.Outcome) bool {
	if out.Result == nil || out.Result.Barcode == nil || *out.Result.Barcode == "" {
		return false
	}
	code := *out.Result.Barcode

	d.mu.Lock()
	first, dup := d.seen[code]
	if !dup {
		d.seen[code] = out.File
	}
	d.mu.Unlock()
	if !dup {
		return false
	}

	out.Status = constants.OutcomeDuplicate
	out.Issues = append(out.Issues, core.Issue{
		Code:    constants.IssueDuplicate,
		Field:   boleto.FieldBarcode,
		Message: constants.IssueDescriptions[constants.IssueDuplicate] + ": " + first,
	})
	return true
}

// MarkDuplicates flags every outcome whose barcode appeared earlier in the
// batch and returns how many were flagged.
func MarkDuplicates(outcomes []core.Outcome) int {
	d := NewDuplicateTracker()
	n := 0
	for i := range outcomes {
		if d.Check(&outcomes[i]) {
			n++
		}
	}
	return n
}
