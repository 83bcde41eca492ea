package natsadapter

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/samirrijal/sundowner/internal/core/domain"
)

// ContentType is set on every published report message.
const ContentType = "application/x-protobuf; type=google.protobuf.Struct"

// EncodeReport serialises a report as a protobuf Struct built from its JSON
// form, so consumers in any language can decode it without a schema.
func EncodeReport(r *domain.SunsetReport) ([]byte, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("flatten report: %w", err)
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build struct: %w", err)
	}
	return proto.Marshal(s)
}

// DecodeReportJSON turns an encoded report back into its JSON form.
func DecodeReportJSON(data []byte) ([]byte, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal struct: %w", err)
	}
	return s.MarshalJSON()
}

// DecodeReport is the inverse of EncodeReport.
func DecodeReport(data []byte) (*domain.SunsetReport, error) {
	raw, err := DecodeReportJSON(data)
	if err != nil {
		return nil, err
	}
	var r domain.SunsetReport
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}
