package constant

import (
	"os"
	"path/filepath"
)

const (
	ITEM_TYPES_SUFFIX = "item_types.json"
	SECTION_URL       = "%ssections/%d.json"

	PROXY_LIST_URL = "https://proxylist.geonode.com/api/proxy-list?limit=500&page=1&sort_by=lastChecked&sort_type=desc"

	// Timestamp layouts used for filenames and for the report footer.
	FILE_TIME_LAYOUT  = "2006-01-02_15-04-05"
	HUMAN_TIME_LAYOUT = "15:04 02/01/2006"
)

var (
	MatchesPath string
	ImagesPath  string
)

func init() {
	wd, err := os.Getwd()
	if err != nil {
		panic("cannot determine working directory: " + err.Error())
	}
	MatchesPath = filepath.Join(wd, "matches")
	ImagesPath = filepath.Join(wd, "images")
}
