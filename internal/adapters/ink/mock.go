package ink

import "hash/fnv"

// mockConfidence is the fixed score attached to mock recognitions
const mockConfidence = 0.85

// mockPhrases is a small rotating set of realistic jotted notes
// selection is keyed off the input size so tests get reproducible text
var mockPhrases = []string{
	"John Smith, 07712345678, Ford Focus 2018, YA19 ABC, Engine warning light",
	"Sarah Jones, 07700 900123, Vauxhall Corsa 2016, AB12 CDE, grinding noise from brakes",
	"Mike Wilson, 0161 496 0000, BMW 320d 2019, CD68 XYZ, oil leak under engine",
	"Emma Clark, 07700900456, Toyota Yaris 2015, EF15 GHJ, MOT and full service",
	"Dave Brown, 07812 998877, Volkswagen Golf 2020, GH70 KLM, battery warning light on dash",
}

// mockResult picks a phrase deterministically from the drawing size
func mockResult(d Drawing) Result {
	h := fnv.New32a()
	n := d.size()
	h.Write([]byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)})
	idx := int(h.Sum32()) % len(mockPhrases)
	if idx < 0 {
		idx += len(mockPhrases)
	}
	return Result{
		Text:       mockPhrases[idx],
		Confidence: mockConfidence,
		IsMock:     true,
	}
}
