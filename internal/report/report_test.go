package report

import (
	"github.com/nao1215/nanumcorp/internal/model"
)

// corp builds a record with the visible fields and optional hidden fields
// given as key/value pairs.
func corp(seq, name, category, group string, hidden ...string) model.Corporation {
	c := model.Corporation{
		SeqNo:             seq,
		Name:              name,
		BusinessCategory:  category,
		DonationGroupType: group,
	}
	for i := 0; i+1 < len(hidden); i += 2 {
		if hidden[i] == model.KeySummaryIdx {
			c.SetSummaryIdx(hidden[i+1])
			continue
		}
		c.SetHidden(hidden[i], hidden[i+1])
	}
	return c
}
