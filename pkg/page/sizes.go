package page

import "github.com/matzehuels/pageview/pkg/geom"

// Common paper sizes in points (1/72 inch).
var (
	PaperA3     = geom.SizeF{Width: 841.89, Height: 1190.55}
	PaperA4     = geom.SizeF{Width: 595.28, Height: 841.89}
	PaperA5     = geom.SizeF{Width: 419.53, Height: 595.28}
	PaperLetter = geom.SizeF{Width: 612, Height: 792}
	PaperLegal  = geom.SizeF{Width: 612, Height: 1008}
)

// paperSizes maps lowercase names to paper sizes for manifest lookups.
var paperSizes = map[string]geom.SizeF{
	"a3":     PaperA3,
	"a4":     PaperA4,
	"a5":     PaperA5,
	"letter": PaperLetter,
	"legal":  PaperLegal,
}

// PaperSize looks up a named paper size. The second return value reports
// whether the name is known.
func PaperSize(name string) (geom.SizeF, bool) {
	s, ok := paperSizes[name]
	return s, ok
}
