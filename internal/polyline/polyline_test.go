package polyline

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

// Worked example from the polyline format reference documentation.
const referenceEncoded = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

var referencePoints = [][2]float64{
	{38.5, -120.2},
	{40.7, -120.95},
	{43.252, -126.453},
}

func TestDecodeEmpty(t *testing.T) {
	points, err := Decode("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("expected empty path, got %v", points)
	}
}

func TestDecodeReferenceExample(t *testing.T) {
	points, err := Decode(referenceEncoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != len(referencePoints) {
		t.Fatalf("expected %d points, got %d", len(referencePoints), len(points))
	}
	for i, want := range referencePoints {
		if math.Abs(points[i][0]-want[0]) > 1e-9 || math.Abs(points[i][1]-want[1]) > 1e-9 {
			t.Errorf("point %d: expected %v, got %v", i, want, points[i])
		}
	}
}

func TestEncodeReferenceExample(t *testing.T) {
	encoded := Encode(referencePoints)
	if encoded != referenceEncoded {
		t.Errorf("expected %q, got %q", referenceEncoded, encoded)
	}
}

func TestDecodeIsDeterministic(t *testing.T) {
	first, err := Decode(referenceEncoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Decode(referenceEncoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two decodes of the same input differ: %v vs %v", first, second)
	}
}

func TestRoundTrip(t *testing.T) {
	paths := [][][2]float64{
		{{0, 0}},
		{{38.5, -120.2}, {40.7, -120.95}, {43.252, -126.453}},
		{{-89.99999, 179.99999}, {89.99999, -179.99999}},
		{{40.63179, -111.93876}, {40.63203, -111.93652}, {40.64005, -111.92174}},
		{{0.00001, -0.00001}, {-0.00001, 0.00001}},
	}

	for _, path := range paths {
		decoded, err := Decode(Encode(path))
		if err != nil {
			t.Fatalf("round trip of %v failed: %v", path, err)
		}
		if len(decoded) != len(path) {
			t.Fatalf("round trip of %v: expected %d points, got %d", path, len(path), len(decoded))
		}
		for i := range path {
			if math.Abs(decoded[i][0]-path[i][0]) > 1e-9 || math.Abs(decoded[i][1]-path[i][1]) > 1e-9 {
				t.Errorf("round trip of %v: point %d became %v", path, i, decoded[i])
			}
		}
	}
}

func TestRoundTripCustomPrecision(t *testing.T) {
	path := [][2]float64{{40.631790, -111.938764}, {40.640051, -111.921740}}
	decoded, err := DecodeWithPrecision(EncodeWithPrecision(path, 1e-6), 1e-6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range path {
		if math.Abs(decoded[i][0]-path[i][0]) > 1e-9 || math.Abs(decoded[i][1]-path[i][1]) > 1e-9 {
			t.Errorf("point %d: expected %v, got %v", i, path[i], decoded[i])
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	// Dropping the final byte leaves the last group with its
	// continuation bit set.
	truncated := referenceEncoded[:len(referenceEncoded)-1]

	_, err := Decode(truncated)
	if err == nil {
		t.Fatal("expected error for truncated input")
	}
	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedError, got %T: %v", err, err)
	}
	// The cut-off group is the final longitude delta "vxq`@",
	// which starts at byte 22 of the reference string.
	if malformed.Offset != 22 {
		t.Errorf("offset = %d, want start of the cut-off group (22)", malformed.Offset)
	}
}

func TestDecodeInvalidByte(t *testing.T) {
	_, err := Decode("_p~iF~ps|U\x1f")
	if err == nil {
		t.Fatal("expected error for byte below the alphabet")
	}
	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedError, got %T: %v", err, err)
	}
	if malformed.Offset != 10 {
		t.Errorf("offset = %d, want position of the invalid byte (10)", malformed.Offset)
	}
}

func TestDecodeOrderPreserved(t *testing.T) {
	path := [][2]float64{{1, 1}, {2, 2}, {3, 3}, {2, 2}, {1, 1}}
	decoded, err := Decode(Encode(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range path {
		if math.Abs(decoded[i][0]-path[i][0]) > 1e-9 || math.Abs(decoded[i][1]-path[i][1]) > 1e-9 {
			t.Errorf("point %d out of order: expected %v, got %v", i, path[i], decoded[i])
		}
	}
}
