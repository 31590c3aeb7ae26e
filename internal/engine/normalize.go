package engine

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/zeebo/xxh3"
)

// Normalize trims text columns, drops rows without cuisines and removes
// whole-row duplicates, keeping the first occurrence. NaN cells compare
// equal to each other. The input is not modified.
func Normalize(raw []RawRecord) []RawRecord {
	out := make([]RawRecord, 0, len(raw))
	seen := make(map[uint64][]string, len(raw))
	var buf []byte

	for _, r := range raw {
		r = trimmed(r)
		if !r.Cuisines.Valid {
			continue
		}

		buf = appendFingerprint(buf[:0], &r)
		h := xxh3.Hash(buf)
		dup := false
		for _, fp := range seen[h] {
			if fp == string(buf) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[h] = append(seen[h], string(buf))
		out = append(out, r)
	}
	return out
}

func trimmed(r RawRecord) RawRecord {
	r.RestaurantName = strings.TrimSpace(r.RestaurantName)
	r.City = strings.TrimSpace(r.City)
	r.Address = strings.TrimSpace(r.Address)
	r.Locality = strings.TrimSpace(r.Locality)
	r.LocalityVerbose = strings.TrimSpace(r.LocalityVerbose)
	if r.Cuisines.Valid {
		r.Cuisines.String = strings.TrimSpace(r.Cuisines.String)
	}
	r.Currency = strings.TrimSpace(r.Currency)
	r.TableBooking = strings.TrimSpace(r.TableBooking)
	r.OnlineDelivery = strings.TrimSpace(r.OnlineDelivery)
	r.DeliveringNow = strings.TrimSpace(r.DeliveringNow)
	r.SwitchToOrder = strings.TrimSpace(r.SwitchToOrder)
	r.RatingColor = strings.TrimSpace(r.RatingColor)
	r.RatingText = strings.TrimSpace(r.RatingText)
	return r
}

// appendFingerprint encodes every column of r. Two rows produce the same
// bytes exactly when they hold the same values, with -0 folded into 0 and
// every NaN into one bit pattern.
func appendFingerprint(b []byte, r *RawRecord) []byte {
	b = binary.LittleEndian.AppendUint64(b, uint64(r.RestaurantID))
	b = binary.LittleEndian.AppendUint64(b, uint64(r.CountryCode))
	b = binary.LittleEndian.AppendUint64(b, uint64(r.PriceRange))
	b = binary.LittleEndian.AppendUint64(b, uint64(r.Votes))
	for _, f := range []float64{r.Longitude, r.Latitude, r.CostForTwo, r.Rating} {
		switch {
		case f == 0:
			f = 0 // fold -0
		case math.IsNaN(f):
			f = math.NaN()
		}
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(f))
	}
	if r.Cuisines.Valid {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}
	for _, s := range []string{
		r.RestaurantName, r.City, r.Address, r.Locality, r.LocalityVerbose,
		r.Cuisines.String, r.Currency, r.TableBooking, r.OnlineDelivery,
		r.DeliveringNow, r.SwitchToOrder, r.RatingColor, r.RatingText,
	} {
		b = binary.AppendUvarint(b, uint64(len(s)))
		b = append(b, s...)
	}
	return b
}
