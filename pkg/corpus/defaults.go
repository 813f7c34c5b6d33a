package corpus

// DefaultCorpusName is the name the host program uses for its built-in corpus.
const DefaultCorpusName = "celestial"

// DefaultEntries is a small corpus of planet, moon, asteroid and star names.
var DefaultEntries = []string{
	"neptune",
	"uranus",
	"saturn",
	"earth",
	"mercury",
	"andromeda",
	"mars",
	"venus",
	"pluto",
	"jupiter",
	"betelguese",
	"sun",
	"ceres",
	"pallas",
	"vesta",
	"hygiea",
	"europa",
	"davida",
	"sylvia",
	"cybele",
	"eunomia",
	"juno",
	"hektor",
	"foris",
	"deimos",
	"phobos",
}
