package columns

import (
	"strings"
)

// Field is a standard column role a header can be classified into.
type Field string

const (
	FieldProductName Field = "product_name"
	FieldQuantity    Field = "quantity"
	FieldNetAmount   Field = "net_amount"
	FieldMRP         Field = "mrp"
	FieldGrossAmount Field = "gross_amount"
	FieldUnknown     Field = "unknown"
)

// Header alias tables. Matching is exact (lowercase + trim), never fuzzy:
// an ambiguous header maps to unknown and is excluded from the mapping.
var aliases = map[Field][]string{
	FieldProductName: {
		"item description", "description", "item", "product", "particulars",
		"goods", "product name", "item name", "material", "article",
	},
	FieldQuantity: {
		"qty", "pcs", "units", "cs", "quantity", "nos", "no", "count",
		"pieces", "unit",
	},
	FieldNetAmount: {
		"net amt", "net amount", "amount", "amt", "total", "value", "net",
		"net value", "taxable value", "taxable amt",
	},
	FieldMRP: {
		"mrp", "rate", "price", "unit price", "unit rate", "u.price", "u.rate",
	},
	FieldGrossAmount: {
		"gross amt", "gross amount", "gross", "gross value",
	},
}

// fieldOrder fixes the evaluation order so duplicate aliases across fields
// resolve deterministically.
var fieldOrder = []Field{
	FieldProductName, FieldQuantity, FieldNetAmount, FieldMRP, FieldGrossAmount,
}

// Mapping holds resolved field -> column-index assignments. NetAmount always
// refers to the highest-priority available price column, even when the
// winning header was semantically MRP or Gross.
type Mapping struct {
	ProductName int
	Quantity    int
	NetAmount   int
	MRP         *int
	GrossAmount *int
}

// Decision is the audit record for one header column. Diagnostics only;
// business logic never branches on it.
type Decision struct {
	HeaderText    string  `json:"header_text"`
	AssignedField Field   `json:"assigned_field"`
	Confidence    float64 `json:"confidence"`
	Reason        string  `json:"reason"`
}

// MapResult is the column mapper's output. Mapping is nil unless Success.
type MapResult struct {
	Mapping          *Mapping
	Decisions        []Decision
	Success          bool
	PriceColumnIndex int   // -1 when no price column resolved
	PriceColumnType  Field // semantic origin of the selected price column
}

// MapColumns classifies each header into a standard field and selects the
// authoritative price column. Mapping succeeds iff product name, quantity,
// and at least one price column were resolved.
func MapColumns(headers []string) MapResult {
	assigned := make(map[Field]int, len(fieldOrder))
	decisions := make([]Decision, 0, len(headers))

	for i, header := range headers {
		norm := strings.ToLower(strings.TrimSpace(header))
		field := classify(norm)
		if field == FieldUnknown {
			decisions = append(decisions, Decision{
				HeaderText:    header,
				AssignedField: FieldUnknown,
				Confidence:    0,
				Reason:        "no alias match",
			})
			continue
		}
		if _, taken := assigned[field]; taken {
			decisions = append(decisions, Decision{
				HeaderText:    header,
				AssignedField: FieldUnknown,
				Confidence:    0,
				Reason:        "duplicate column for " + string(field) + "; first occurrence wins",
			})
			continue
		}
		assigned[field] = i
		decisions = append(decisions, Decision{
			HeaderText:    header,
			AssignedField: field,
			Confidence:    1,
			Reason:        "exact alias match",
		})
	}

	// Price priority: net amount > mrp > gross amount. The net/taxable
	// value is the most reliable basis for a per-unit computation; MRP and
	// gross may include tax or be a list price unrelated to the transacted
	// quantity. Do not reorder.
	priceIdx := -1
	priceType := FieldUnknown
	for _, f := range []Field{FieldNetAmount, FieldMRP, FieldGrossAmount} {
		if idx, ok := assigned[f]; ok {
			priceIdx = idx
			priceType = f
			break
		}
	}

	nameIdx, hasName := assigned[FieldProductName]
	qtyIdx, hasQty := assigned[FieldQuantity]
	if !hasName || !hasQty || priceIdx < 0 {
		return MapResult{
			Mapping:          nil,
			Decisions:        decisions,
			Success:          false,
			PriceColumnIndex: priceIdx,
			PriceColumnType:  priceType,
		}
	}

	m := &Mapping{
		ProductName: nameIdx,
		Quantity:    qtyIdx,
		NetAmount:   priceIdx,
	}
	// Literal mrp/gross columns keep their own optional slots for display,
	// regardless of which column won the price selection.
	if idx, ok := assigned[FieldMRP]; ok {
		m.MRP = &idx
	}
	if idx, ok := assigned[FieldGrossAmount]; ok {
		m.GrossAmount = &idx
	}

	return MapResult{
		Mapping:          m,
		Decisions:        decisions,
		Success:          true,
		PriceColumnIndex: priceIdx,
		PriceColumnType:  priceType,
	}
}

func classify(norm string) Field {
	for _, f := range fieldOrder {
		for _, alias := range aliases[f] {
			if norm == alias {
				return f
			}
		}
	}
	return FieldUnknown
}
