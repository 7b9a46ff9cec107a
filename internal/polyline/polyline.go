package polyline

import (
	"fmt"
	"math"
)

// MalformedError reports an encoded polyline that cannot be decoded:
// either a byte below the encoding alphabet or a value group that is
// cut off with its continuation bit still set.
type MalformedError struct {
	Offset int
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed polyline at offset %d: %s", e.Offset, e.Reason)
}

// Decode converts an encoded polyline string to a slice of lat/lng coordinates.
// Implementation based on Google's Encoded Polyline Algorithm Format.
// Default precision is 1e-5 (the Google Maps standard).
func Decode(encoded string) ([][2]float64, error) {
	return DecodeWithPrecision(encoded, 1e-5)
}

// DecodeWithPrecision decodes a polyline with a custom precision factor.
// Directions providers that scale by 1,000,000 (e.g. GraphHopper) need 1e-6.
func DecodeWithPrecision(encoded string, precision float64) ([][2]float64, error) {
	var points [][2]float64
	index, lat, lng := 0, 0, 0

	for index < len(encoded) {
		latDelta, next, err := decodeValue(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next
		lat += latDelta

		lngDelta, next, err := decodeValue(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next
		lng += lngDelta

		// Coordinates in Google standard order: [latitude, longitude]
		points = append(points, [2]float64{
			float64(lat) * precision,
			float64(lng) * precision,
		})
	}

	return points, nil
}

// decodeValue reads one zig-zag encoded signed delta starting at index.
// Returns the delta and the index of the next unread byte. On truncation
// the error offset is the start of the cut-off group; on an invalid byte
// it is that byte's position.
func decodeValue(encoded string, index int) (int, int, error) {
	start := index
	shift, result := 0, 0
	for {
		if index >= len(encoded) {
			return 0, index, &MalformedError{
				Offset: start,
				Reason: "input ends inside a value group",
			}
		}
		b := int(encoded[index]) - 63
		if b < 0 {
			return 0, index, &MalformedError{
				Offset: index,
				Reason: fmt.Sprintf("byte %q outside encoding alphabet", encoded[index]),
			}
		}
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	// Zig-zag: odd means negative
	if result&1 != 0 {
		return ^(result >> 1), index, nil
	}
	return result >> 1, index, nil
}

// Encode converts lat/lng coordinates to an encoded polyline string
// at the standard 1e-5 precision.
func Encode(points [][2]float64) string {
	return EncodeWithPrecision(points, 1e-5)
}

// EncodeWithPrecision is the inverse of DecodeWithPrecision.
func EncodeWithPrecision(points [][2]float64, precision float64) string {
	if len(points) == 0 {
		return ""
	}

	out := make([]byte, 0, len(points)*4)
	prevLat, prevLng := 0, 0

	for _, p := range points {
		lat := int(math.Round(p[0] / precision))
		lng := int(math.Round(p[1] / precision))

		out = encodeValue(out, lat-prevLat)
		out = encodeValue(out, lng-prevLng)

		prevLat, prevLng = lat, lng
	}

	return string(out)
}

// encodeValue appends one signed delta as zig-zagged 5-bit groups.
func encodeValue(out []byte, delta int) []byte {
	v := delta << 1
	if delta < 0 {
		v = ^v
	}
	for v >= 0x20 {
		out = append(out, byte((0x20|(v&0x1f))+63))
		v >>= 5
	}
	return append(out, byte(v+63))
}
