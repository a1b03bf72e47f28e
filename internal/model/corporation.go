package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys of the visible columns of the registry table. The snapshot format
// uses the column captions shown on the portal.
const (
	KeySeqNo             = "번호"
	KeyName              = "공익법인명"
	KeyBusinessCategory  = "공익사업유형"
	KeyDonationGroupType = "기부금단체유형"
)

// Keys of the hidden inputs embedded in each registry row. The portal sets
// these as the input's class attribute.
const (
	KeyBusinessRegNo       = "bsnmNo"
	KeyEstablishedOn       = "cratQu"
	KeyPublicBenefitSerial = "pbnfSn"
	KeyDesignatedOn        = "pbnfDe"
	KeyFirstDesignation    = "frstPbnf"
	KeyFiscalYearEnd       = "bsnsYearEnd"
)

// KeySummaryIdx is the key of the disclosure-summary index taken from the
// popup trigger in the disclosure column.
const KeySummaryIdx = "summaryIdx"

// VisibleKeys returns the keys of the four visible columns in table order.
func VisibleKeys() []string {
	return []string{KeySeqNo, KeyName, KeyBusinessCategory, KeyDonationGroupType}
}

// HiddenFieldKeys returns every recognized hidden field key.
func HiddenFieldKeys() []string {
	return []string{
		KeyBusinessRegNo,
		KeyEstablishedOn,
		KeyPublicBenefitSerial,
		KeyDesignatedOn,
		KeyFirstDesignation,
		KeyFiscalYearEnd,
	}
}

// IsHiddenFieldKey reports whether key names a recognized hidden field.
func IsHiddenFieldKey(key string) bool {
	switch key {
	case KeyBusinessRegNo, KeyEstablishedOn, KeyPublicBenefitSerial,
		KeyDesignatedOn, KeyFirstDesignation, KeyFiscalYearEnd:
		return true
	default:
		return false
	}
}

// Field is a single key/value pair of a hidden field.
type Field struct {
	Key   string
	Value string
}

// Corporation is one row of the public-benefit corporation registry.
//
// All values are kept as rendered by the portal; nothing is converted to
// numbers or dates. The set of hidden fields varies from row to row, so
// they are kept as an ordered list rather than fixed struct fields. The
// order is the order in which each key was first seen in the row.
type Corporation struct {
	// SeqNo is the display-only sequence number of the row.
	SeqNo string

	// Name is the corporation name.
	Name string

	// BusinessCategory is the public-benefit business category label.
	BusinessCategory string

	// DonationGroupType is the donation group type label.
	DonationGroupType string

	// HiddenFields holds the recognized hidden inputs of the row.
	HiddenFields []Field

	// SummaryIdx is the disclosure-summary index. Only meaningful when
	// HasSummaryIdx is true.
	SummaryIdx string

	// HasSummaryIdx reports whether the row carried a disclosure popup trigger.
	HasSummaryIdx bool
}

// SetHidden stores a hidden field value. A key seen before keeps its
// position and gets the new value. Unrecognized keys are ignored and
// SetHidden returns false.
func (c *Corporation) SetHidden(key, value string) bool {
	if !IsHiddenFieldKey(key) {
		return false
	}
	for i := range c.HiddenFields {
		if c.HiddenFields[i].Key == key {
			c.HiddenFields[i].Value = value
			return true
		}
	}
	c.HiddenFields = append(c.HiddenFields, Field{Key: key, Value: value})
	return true
}

// HiddenValue returns the value of a hidden field and whether it is present.
func (c Corporation) HiddenValue(key string) (string, bool) {
	for _, f := range c.HiddenFields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// SetSummaryIdx records the disclosure-summary index.
func (c *Corporation) SetSummaryIdx(idx string) {
	c.SummaryIdx = idx
	c.HasSummaryIdx = true
}

// Keys returns the record's key set in iteration order: the visible
// columns, then hidden fields in first-seen order, then the
// disclosure-summary index when present.
func (c Corporation) Keys() []string {
	keys := make([]string, 0, 4+len(c.HiddenFields)+1)
	keys = append(keys, VisibleKeys()...)
	for _, f := range c.HiddenFields {
		keys = append(keys, f.Key)
	}
	if c.HasSummaryIdx {
		keys = append(keys, KeySummaryIdx)
	}
	return keys
}

// Value returns the value stored under key and whether the record has it.
func (c Corporation) Value(key string) (string, bool) {
	switch key {
	case KeySeqNo:
		return c.SeqNo, true
	case KeyName:
		return c.Name, true
	case KeyBusinessCategory:
		return c.BusinessCategory, true
	case KeyDonationGroupType:
		return c.DonationGroupType, true
	case KeySummaryIdx:
		if c.HasSummaryIdx {
			return c.SummaryIdx, true
		}
		return "", false
	default:
		return c.HiddenValue(key)
	}
}

// set assigns a value by key. Unknown keys are ignored.
func (c *Corporation) set(key, value string) {
	switch key {
	case KeySeqNo:
		c.SeqNo = value
	case KeyName:
		c.Name = value
	case KeyBusinessCategory:
		c.BusinessCategory = value
	case KeyDonationGroupType:
		c.DonationGroupType = value
	case KeySummaryIdx:
		c.SetSummaryIdx(value)
	default:
		c.SetHidden(key, value)
	}
}

// MarshalJSON encodes the record as a JSON object whose members follow Keys().
func (c Corporation) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range c.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		value, _ := c.Value(key)
		if err := writeJSONString(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a record written by MarshalJSON. Member order is
// preserved for hidden fields; unknown members are ignored and non-string
// values are kept as their literal JSON text.
func (c *Corporation) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("corporation: expected JSON object")
	}

	*c = Corporation{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("corporation: unexpected key token %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("corporation: failed to decode %q: %w", key, err)
		}

		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			value = string(raw)
		}
		c.set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// writeJSONString writes s as a JSON string without HTML escaping, so that
// names containing '&' or '<' stay readable in the snapshot.
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
