package catalog

import "strings"

// Coordinates is a port location used by downstream map rendering.
type Coordinates struct {
	Lat float64
	Lon float64
}

// PortCoordinates maps normalized port names (upper case) to locations.
// Indian entries include the raw customs location codes the source API
// returns in place of names.
var PortCoordinates = map[string]Coordinates{
	"MOMBASA":       {-4.0547, 39.6636},
	"LAMU":          {-2.2717, 40.9020},
	"DAR ES SALAAM": {-6.8235, 39.2695},
	"TANGA":         {-5.0559, 39.1121},
	"ZANZIBAR":      {-6.1629, 39.1919},
	"KAMPALA":       {0.3163, 32.5822},
	"JINJA":         {0.4244, 33.2042},

	"GUAYAQUIL":               {-2.2885, -79.9167},
	"ESMERALDAS":              {0.9856, -79.6583},
	"PUERTO LIMON":            {9.9913, -83.0240},
	"MOIN":                    {10.0000, -83.0786},
	"CALDERA":                 {9.9136, -84.7176},
	"BALBOA":                  {8.9565, -79.5663},
	"COLON":                   {9.3596, -79.9001},
	"MANZANILLO":              {9.3639, -79.8804},
	"CRISTOBAL":               {9.3499, -79.9079},
	"PUERTO QUETZAL":          {13.9167, -90.7833},
	"SANTO TOMAS DE CASTILLA": {15.6888, -88.6086},

	"SHANGHAI":     {31.2304, 121.4737},
	"QINGDAO":      {36.0671, 120.3826},
	"TIANJIN":      {39.3434, 117.3616},
	"XIAMEN":       {24.4798, 118.0894},
	"NANSHA":       {22.7535, 113.6264},
	"DALIAN":       {38.9140, 121.6147},
	"NINGBO":       {29.8683, 121.5440},
	"ZHANGJIAGANG": {31.8773, 120.5562},
	"TAICANG":      {31.4505, 121.1306},
	"LANSHAN":      {35.1228, 119.3496},
	"PUTIAN":       {25.4326, 119.0159},
	"YAN TIAN":     {22.575, 114.276},

	"MUNDRA":      {22.8396, 69.7203},
	"NHAVA SHEVA": {18.9511, 72.9567},
	"CHENNAI":     {13.0827, 80.2707},
	"INMUN1":      {22.8396, 69.7203},
	"INNSA1":      {18.9511, 72.9567},
	"INMAA1":      {13.0827, 80.2707},
	"INVTZ1":      {17.6868, 83.2185},
	"INCOK1":      {9.9656, 76.2625},
	"INKAT1":      {13.3069, 80.3392},
	"INTUT1":      {8.7642, 78.1348},
	"INIXY1":      {23.0768, 70.1343},
	"INHZA1":      {21.0922, 72.6186},
	"INCCU1":      {22.5478, 88.3182},

	"TOKYO":        {35.6762, 139.6503},
	"YOKOHAMA":     {35.4437, 139.6380},
	"OSAKA":        {34.6937, 135.5023},
	"KOBE":         {34.6901, 135.1955},
	"NAGOYA":       {35.1815, 136.9066},
	"BUSAN":        {35.1796, 129.0756},
	"INCHON":       {37.4563, 126.7052},
	"GWANGYANG":    {34.9407, 127.6959},
	"HO CHI MINH":  {10.8231, 106.6297},
	"HAIPHONG":     {20.8449, 106.6881},
	"PORT KLANG":   {3.00, 101.40},
	"PENANG":       {5.4164, 100.3327},
	"BANGKOK":      {13.7563, 100.5018},
	"LAEM CHABANG": {13.0825, 100.9108},
	"JAKARTA":      {-6.2088, 106.8456},
	"SURABAYA":     {-7.2575, 112.7521},
	"SEMARANG":     {-6.9667, 110.4167},
	"BELAWAN":      {3.7853, 98.6860},
}

// portAliases repairs source spellings that would otherwise split one
// port across several names.
var portAliases = map[string]string{
	"VIZAG":     "Visakhapatnam",
	"VIZAG SEA": "Visakhapatnam",
	"GOA":       "Mormugao (Goa)",
	"GOA PORT":  "Mormugao (Goa)",
}

// CleanPortName normalizes a source port string: empty values become
// "Unknown", a parenthesized code like "Jawaharlal Nehru (NHAVA SHEVA)"
// collapses to the code, and known alias spellings are repaired.
func CleanPortName(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "Unknown"
	}
	if i := strings.LastIndex(s, "("); i >= 0 {
		s = strings.TrimSpace(strings.TrimSuffix(s[i+1:], ")"))
	}
	if fixed, ok := portAliases[s]; ok {
		return fixed
	}
	return s
}

// PortCoords resolves a cleaned port name to coordinates. Exact matches
// win; otherwise a contained key of four or more characters matches, so
// "MUNDRA PORT" still resolves. The bool reports whether a location was
// found.
func PortCoords(portName string) (Coordinates, bool) {
	upper := strings.ToUpper(strings.TrimSpace(portName))
	if c, ok := PortCoordinates[upper]; ok {
		return c, true
	}
	for key, c := range PortCoordinates {
		if len(key) > 3 && strings.Contains(upper, key) {
			return c, true
		}
	}
	return Coordinates{}, false
}
