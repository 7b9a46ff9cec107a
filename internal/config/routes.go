package config

// RouteDef is the static definition of a named route: waypoints for the
// directions request plus the hand-picked camera IDs along it.
type RouteDef struct {
	RouteID   string
	Name      string
	Color     string
	Waypoints []string
	CameraIDs []int
}

// Routes are the monitored routes between the configured origin and
// destination, in priority order. The first entry is the primary route.
var Routes = []RouteDef{
	{
		// I-15 -> I-215 -> I-80 (Parley's Canyon) -> SR-248 to Kamas ->
		// SR-32 south through Francis -> SR-35 over Wolf Creek Pass -> US-40
		RouteID:   "parleys-wolfcreek",
		Name:      "Parley's / Wolf Creek",
		Color:     "#3b82f6",
		Waypoints: []string{"Kamas, UT", "Francis, UT"},
		CameraIDs: []int{
			// I-215 East
			91683, 91581, 91614,
			// I-80 Parley's Canyon
			91604, 91619, 91746, 91642, 90912, 91410, 91425, 91761, 91736,
			// SR-35 Wolf Creek Pass
			90544, 90779,
			// US-40 east of Wolf Creek
			90043, 90661, 89190,
		},
	},
	{
		// US-189 through Provo Canyon -> Heber -> SR-32 -> Kamas ->
		// SR-35 over Wolf Creek Pass -> US-40
		RouteID:   "provo-wolfcreek",
		Name:      "Provo Canyon / Wolf Creek",
		Color:     "#8b5cf6",
		Waypoints: []string{"Provo Canyon, UT", "Heber City, UT", "Kamas, UT"},
		CameraIDs: []int{
			// US-189 Provo Canyon
			90363, 87874, 90727, 90626, 90728, 90275,
			// US-40 Heber area
			90389, 90353, 91773,
			// SR-35 Wolf Creek Pass
			90544, 90779,
			// US-40 east of Wolf Creek
			90043, 90661, 89190,
		},
	},
	{
		// Fallback when SR-35 is closed: stays on US-40 over Daniels Summit
		// past Strawberry Reservoir, north through Tabiona
		RouteID:   "us40-tabiona",
		Name:      "US-40 / Tabiona",
		Color:     "#f97316",
		Waypoints: []string{"Duchesne, UT", "Tabiona, UT"},
		CameraIDs: []int{
			// I-215 East
			91683, 91581, 91614,
			// I-80 Parley's Canyon
			91604, 91619, 91746, 91642, 90912, 91410, 91425, 91761, 91736,
			// US-40 Heber -> Daniels Summit
			90389, 90353, 91773, 87716, 90593, 92985, 90307,
			// US-40 Strawberry Reservoir
			90207, 88216, 90980, 90465,
			// US-40 Duchesne area
			90043, 90661, 89190,
		},
	},
}

// AllCameraIDs returns the union of camera IDs across all routes,
// deduplicated, order preserved.
func AllCameraIDs() []int {
	seen := make(map[int]bool)
	var result []int
	for _, route := range Routes {
		for _, id := range route.CameraIDs {
			if !seen[id] {
				seen[id] = true
				result = append(result, id)
			}
		}
	}
	return result
}

// RouteIDsForCamera returns which route IDs a camera belongs to.
func RouteIDsForCamera(cameraID int) []string {
	var ids []string
	for _, route := range Routes {
		for _, id := range route.CameraIDs {
			if id == cameraID {
				ids = append(ids, route.RouteID)
				break
			}
		}
	}
	return ids
}

// ConditionRoadways are roadway-name keywords used to keep only road
// conditions relevant to the monitored routes.
var ConditionRoadways = []string{"i-15", "us-189", "us-40", "sr-35", "sr-32", "us-6"}

// WeatherStationKeywords match station names along the monitored routes;
// the upstream feed carries no coordinates for weather stations.
var WeatherStationKeywords = []string{
	"wolf creek", "daniels", "heber", "provo canyon", "strawberry",
	"deer creek", "parleys", "spanish fork", "us-40", "sr-35",
	"duchesne", "currant creek",
}

// PassKeywords match the mountain passes along the monitored routes.
var PassKeywords = []string{
	"wolf creek", "parley", "daniels", "provo canyon", "mayflower",
	"sr-248", "pinion",
}

// PrimaryPassKeyword identifies the pass whose seasonal closure decides
// which route is viable.
const PrimaryPassKeyword = "wolf creek"
