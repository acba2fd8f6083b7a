package report

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical mode for deterministic encoding. Timestamps are
// written as RFC 3339 strings.
var cborEncMode cbor.EncMode

func init() {
	opts := cbor.CanonicalEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	em, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("report: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Marshal serializes a Report to CBOR bytes.
func Marshal(r *Report) ([]byte, error) {
	return cborEncMode.Marshal(r)
}

// Unmarshal deserializes a Report from CBOR bytes.
func Unmarshal(data []byte) (*Report, error) {
	var r Report
	if err := cbor.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("report: unmarshal: %w", err)
	}
	return &r, nil
}

// MarshalBatch serializes several reports as one CBOR array.
func MarshalBatch(reports []*Report) ([]byte, error) {
	if reports == nil {
		reports = []*Report{}
	}
	return cborEncMode.Marshal(reports)
}

// UnmarshalBatch deserializes a CBOR array of reports.
func UnmarshalBatch(data []byte) ([]*Report, error) {
	var reports []*Report
	if err := cbor.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("report: unmarshal batch: %w", err)
	}
	return reports, nil
}
