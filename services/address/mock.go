package address

import (
	"fmt"
	"hash/fnv"
	"strings"

	"skiphire/models"
)

var (
	mockStreets = []string{
		"High Street",
		"Church Lane",
		"Victoria Road",
		"Kings Road",
		"Queen Street",
	}
	mockAreas = []string{
		"London",
		"Manchester",
		"Birmingham",
		"Leeds",
		"Liverpool",
	}
	mockPostcodes = []string{"SW1A 1AA", "M1 1AA", "B1 1AA", "LS1 1AA", "L1 1AA"}
)

// MockCandidates produces local address suggestions when no provider is
// reachable. The same query always yields the same suggestions.
func MockCandidates(query string) []models.AddressCandidate {
	if len(query) < 2 {
		return []models.AddressCandidate{}
	}

	needle := strings.ToLower(query)
	out := make([]models.AddressCandidate, 0, 5)

	for i, street := range mockStreets {
		if !strings.Contains(strings.ToLower(street), needle) {
			continue
		}
		idx := len(out)
		area := mockAreas[idx%len(mockAreas)]
		postcode := mockPostcodes[idx%len(mockPostcodes)]
		number := houseNumber(query, street)

		out = append(out, models.AddressCandidate{
			ID:          fmt.Sprintf("mock-%d", i),
			Line1:       fmt.Sprintf("%d %s", number, street),
			Line3:       area,
			City:        area,
			Postcode:    postcode,
			FullAddress: fmt.Sprintf("%d %s, %s, %s", number, street, area, postcode),
			Type:        "address",
		})
		if len(out) == 5 {
			break
		}
	}
	return out
}

// houseNumber derives a stable number in [1,200] from the query and street.
func houseNumber(query, street string) int {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(query)))
	h.Write([]byte(street))
	return int(h.Sum32()%200) + 1
}
