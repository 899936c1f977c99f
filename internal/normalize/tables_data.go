package normalize

// USPS Publication 28, Appendix C1 primary street suffixes
var uspsSuffixes = []string{
	"Alley", "Anex", "Arcade", "Avenue", "Bayou", "Beach", "Bend", "Bluff", "Bluffs",
	"Bottom", "Boulevard", "Branch", "Bridge", "Brook", "Brooks", "Burg", "Burgs", "Bypass",
	"Camp", "Canyon", "Cape", "Causeway", "Center", "Centers", "Circle", "Cliff", "Cliffs",
	"Club", "Common", "Commons", "Corner", "Corners", "Course", "Court", "Courts", "Cove",
	"Coves", "Creek", "Crescent", "Crest", "Crossing", "Crossroad", "Crossroads", "Curve",
	"Dale", "Dam", "Divide", "Drive", "Drives", "Estate", "Estates", "Expressway",
	"Extension", "Extensions", "Falls", "Ferry", "Field", "Fields", "Flat", "Flats", "Ford",
	"Fords", "Forest", "Forge", "Forges", "Fork", "Forks", "Fort", "Freeway", "Garden",
	"Gateway", "Glen", "Glens", "Green", "Greens", "Grove", "Groves", "Harbor", "Harbors",
	"Haven", "Heights", "Highway", "Hill", "Hills", "Hollow", "Inlet", "Island", "Islands",
	"Isle", "Junction", "Junctions", "Key", "Keys", "Knoll", "Knolls", "Lake", "Lakes",
	"Landing", "Lane", "Light", "Lights", "Loaf", "Lock", "Locks", "Lodge", "Loop", "Manor",
	"Manors", "Meadows", "Mill", "Mills", "Mission", "Motorway", "Mount", "Mountain",
	"Mountains", "Neck", "Orchard", "Oval", "Overpass", "Park", "Parks", "Parkway",
	"Parkways", "Passage", "Path", "Pike", "Pine", "Pines", "Place", "Plain", "Plains",
	"Plaza", "Point", "Points", "Port", "Ports", "Prairie", "Radial", "Ranch", "Rapid",
	"Rapids", "Rest", "Ridge", "Ridges", "River", "Road", "Roads", "Route", "Shoal", "Shoals",
	"Shore", "Shores", "Skyway", "Spring", "Square", "Squares", "Station", "Stravenue",
	"Stream", "Street", "Streets", "Summit", "Terrace", "Throughway", "Trace", "Track",
	"Trafficway", "Trail", "Trailer", "Tunnel", "Turnpike", "Underpass", "Union", "Unions",
	"Valley", "Valleys", "Viaduct", "View", "Views", "Village", "Villages", "Ville", "Vista",
	"Way", "Well", "Wells",
}

// suffixes seen in the Richmond extract that are accepted as-is
var localSuffixes = []string{
	"Arsenal", "Cary", "Chase", "Cloisters", "Close", "Conn", "Concourse", "Driveway", "Farm",
	"Greene", "James", "Level", "Mews", "Needle", "Oaks", "Overlook", "Pass", "Pathway",
	"Ramon", "Row", "Run", "Sage", "Slip", "Trek", "Turn", "Walk", "Waye",
}

// USPS abbreviations keyed by the canonical suffix they expand to
var suffixAbbreviations = map[string][]string{
	"Alley": {
		"Allee", "Ally", "Aly", "Allee.", "Ally.", "Aly.",
	},
	"Anex": {
		"Annex", "Annx", "Anx", "Annex.", "Annx.", "Anx.",
	},
	"Arcade": {
		"Arc", "Arc.",
	},
	"Avenue": {
		"Av", "Ave", "Aven", "Avenu", "Avn", "Avnue", "Av.", "Ave.", "Aven.", "Avenu.", "Avn.",
		"Avnue.",
	},
	"Bayou": {
		"Bayoo", "Byu", "Bayoo.", "Byu.",
	},
	"Beach": {
		"Bch", "Bch.",
	},
	"Bend": {
		"Bnd", "Bnd.",
	},
	"Bluff": {
		"Blf", "Bluf",
	},
	"Bluffs": {
		"Blfs", "Blfs.",
	},
	"Bottom": {
		"Bot", "Btm", "Bottm", "Bot.", "Btm.", "Bottm.",
	},
	"Boulevard": {
		"Blvd", "Boul", "Boulv", "Blvd.", "Boul.", "Boulv.",
	},
	"Branch": {
		"Br", "Brnch", "Br.", "Brnch.",
	},
	"Bridge": {
		"Brdge", "Brg", "Brdge.", "Brg.",
	},
	"Brook": {
		"Brk", "Brk.",
	},
	"Brooks": {
		"Brks", "Brks.",
	},
	"Burg": {
		"Bg", "Bg.",
	},
	"Burgs": {
		"Bgs", "Bgs.",
	},
	"Bypass": {
		"Byp", "Bypa", "Bypas", "Byps", "Byp.", "Bypa.", "Bypas.", "Byps.",
	},
	"Camp": {
		"Cp", "Cmp", "Cp.", "Cmp.",
	},
	"Canyon": {
		"Canyn", "Cnyn", "Cyn", "Canyn.", "Cnyn.", "Cyn.",
	},
	"Cape": {
		"Cpe", "Cpe.",
	},
	"Causeway": {
		"Causwa", "Cswy",
	},
	"Center": {
		"Cen", "Cent", "Centr", "Centre", "Cnter", "Cntr", "Ctr", "Cen.", "Cent.", "Centr.",
		"Centre.", "Cnter.", "Cntr.", "Ctr.",
	},
	"Centers": {
		"Ctrs", "Ctrs.",
	},
	"Circle": {
		"Cir", "Circ", "Circl", "Crcl", "Crcle", "Cir.", "Circ.", "Circl.", "Crcl.", "Crcle.",
		"Cirs", "Cirs.",
	},
	"Cliff": {
		"Clf", "Clf.",
	},
	"Cliffs": {
		"Clfs", "Clfs.",
	},
	"Club": {
		"Clb", "Clb.",
	},
	"Common": {
		"Cmn", "Cmn.",
	},
	"Commons": {
		"Cmns", "Cmns.",
	},
	"Corner": {
		"Cor", "Cor.",
	},
	"Corners": {
		"Cors", "Cors.",
	},
	"Course": {
		"Crse", "Crse.",
	},
	"Court": {
		"Ct", "Ct.",
	},
	"Courts": {
		"Cts", "Cts.",
	},
	"Cove": {
		"Cv", "Cv.",
	},
	"Coves": {
		"Cvs", "Cvs.",
	},
	"Creek": {
		"Crk", "Crk.",
	},
	"Crescent": {
		"Cres", "Crsent", "Crsnt", "Cres.", "Crsent.", "Crsnt.",
	},
	"Crest": {
		"Crst", "Crst.",
	},
	"Crossing": {
		"Crssng", "Xing", "Crssng.", "Xing.",
	},
	"Crossroad": {
		"Xrd", "Xrd.",
	},
	"Crossroads": {
		"Xrds", "Xrds.",
	},
	"Curve": {
		"Curv", "Curv.",
	},
	"Dale": {
		"Dl", "Dl.",
	},
	"Dam": {
		"Dm", "Dm.",
	},
	"Divide": {
		"Div", "Dv", "Dvd", "Div.", "Dv.", "Dvd.",
	},
	"Drive": {
		"Dr", "Driv", "Drv", "Dr.", "Driv.", "Drv.",
	},
	"Drives": {
		"Drs", "Drs.",
	},
	"Estate": {
		"Est", "Est.",
	},
	"Estates": {
		"Ests", "Ests.",
	},
	"Expressway": {
		"Exp", "Expr", "Express", "Expw", "Expy", "Exp.", "Expr.", "Express.", "Expw.", "Expy.",
	},
	"Extension": {
		"Ext", "Extn", "Extnsn", "Ext.", "Extn.", "Extnsn.",
	},
	"Extensions": {
		"Exts", "Exts.",
	},
	"Falls": {
		"Fls", "Fls.",
	},
	"Ferry": {
		"Fry", "Frry", "Fry.", "Frry.",
	},
	"Field": {
		"Fld", "Fld.",
	},
	"Fields": {
		"Flds", "Flds.",
	},
	"Flat": {
		"Flt", "Flt.",
	},
	"Flats": {
		"Flts", "Flts.",
	},
	"Ford": {
		"Frd", "Frd.",
	},
	"Fords": {
		"Frds", "Frds.",
	},
	"Forest": {
		"Forests", "Frst", "Forests.", "Frst.",
	},
	"Forge": {
		"Forg", "Frg", "Forg.", "Frg.",
	},
	"Forges": {
		"Frgs", "Frgs.",
	},
	"Fork": {
		"Frk", "Frk.",
	},
	"Forks": {
		"Frks.",
	},
	"Fort": {
		"Frt", "Ft", "Frt.", "Ft.",
	},
	"Freeway": {
		"Freewy", "Frway", "Frwy", "Fwy", "Freewy.", "Frway.", "Frwy.", "Fwy.",
	},
	"Garden": {
		"Gardn", "Grden", "Grdn", "Gdn", "Gardn.", "Grden.", "Grdn.", "Gdn.", "Gdns", "Grdns",
		"Gdns.", "Grdns.",
	},
	"Gateway": {
		"Gatewy", "Gatway", "Gtway", "Gtwy", "Gatewy.", "Gatway.", "Gtway.", "Gtwy.",
	},
	"Glen": {
		"Gln", "Gln.",
	},
	"Glens": {
		"Glns", "Glns.",
	},
	"Green": {
		"Grn", "Grn.",
	},
	"Greens": {
		"Grns", "Grns.",
	},
	"Grove": {
		"Grov", "Grv", "Grov.", "Grv.",
	},
	"Groves": {
		"Grvs", "Grvs.",
	},
	"Harbor": {
		"Harb", "Harbr", "Hbr", "Hrbor", "Harb.", "Harbr.", "Hbr.", "Hrbor.",
	},
	"Harbors": {
		"Hbrs", "Hbrs.",
	},
	"Haven": {
		"Hvn", "Hvn.",
	},
	"Heights": {
		"Ht", "Hts", "Ht.", "Hts.",
	},
	"Highway": {
		"Highwy", "Hiway", "Hiwy", "Hway", "Hwy", "Highwy.", "Hiway.", "Hiwy.", "Hway.", "Hwy.",
	},
	"Hill": {
		"Hl", "Hl.",
	},
	"Hills": {
		"Hls", "Hls.",
	},
	"Hollow": {
		"Hllw", "Hollows", "Holw", "Holws", "Hllw.", "Hollows.", "Holw.", "Holws.",
	},
	"Inlet": {
		"Inlt", "Inlt.",
	},
	"Island": {
		"Is", "Islnd", "Is.", "Islnd.",
	},
	"Islands": {
		"Iss", "Islnds", "Iss.", "Islnds.",
	},
	"Isle": {
		"Isles", "Isles.",
	},
	"Junction": {
		"Jct", "Jction", "Jctn", "Junctn", "Juncton", "Jct.", "Jction.", "Jctn.", "Junctn.",
		"Juncton.",
	},
	"Junctions": {
		"Jctns", "Jcts", "Jctns.", "Jcts.",
	},
	"Key": {
		"Ky", "Ky.",
	},
	"Keys": {
		"Kys", "Kys.",
	},
	"Knoll": {
		"Knl", "Knol", "Knl.", "Knol.",
	},
	"Knolls": {
		"Knls", "Knls.",
	},
	"Lake": {
		"Lk", "Lk.",
	},
	"Lakes": {
		"Lks", "Lks.",
	},
	"Landing": {
		"Lndg", "Lndng", "Lndg.", "Lndng.",
	},
	"Lane": {
		"Ln", "Ln.",
	},
	"Light": {
		"Lgt", "Lgt.",
	},
	"Lights": {
		"Lgts", "Lgts.",
	},
	"Loaf": {
		"Lf", "Lf.",
	},
	"Lock": {
		"Lck", "Lck.",
	},
	"Locks": {
		"Lcks", "Lcks.",
	},
	"Lodge": {
		"Ldg", "Ldge", "Lodg", "Ldg.", "Ldge.", "Lodg.",
	},
	"Loop": {
		"Loops", "Loops.",
	},
	"Manor": {
		"Mnr", "Mnr.",
	},
	"Manors": {
		"Mnrs", "Mnrs.",
	},
	"Meadows": {
		"Mdw", "Mdws", "Medows", "Mdw.", "Mdws.", "Medows.",
	},
	"Mill": {
		"Ml", "Ml.",
	},
	"Mills": {
		"Mls", "Mls.",
	},
	"Mission": {
		"Missn", "Mssn", "Msn", "Missn.", "Mssn.", "Msn.",
	},
	"Motorway": {
		"Mtwy", "Mtwy.",
	},
	"Mount": {
		"Mnt", "Mt", "Mnt.", "Mt.",
	},
	"Mountain": {
		"Mntain", "Mntn", "Mountin", "Mtin", "Mtn", "Mntain.", "Mntn.", "Mountin.", "Mtin.",
		"Mtn.",
	},
	"Mountains": {
		"Mntns", "Mtns", "Mntns.", "Mtns.",
	},
	"Neck": {
		"Nck", "Nck.",
	},
	"Orchard": {
		"Orch", "Orchrd", "Orch.", "Orchrd.",
	},
	"Oval": {
		"Ovl", "Ovl.",
	},
	"Overpass": {
		"Opas", "Opas.",
	},
	"Park": {
		"Prk", "Prk.",
	},
	"Parks": {
		"Prks", "Prks.",
	},
	"Parkway": {
		"Parkwy", "Pkway", "Pkwy", "Pky", "Parkwy.", "Pkway.", "Pkwy.", "Pky.",
	},
	"Parkways": {
		"Pkwys", "Pkwys.",
	},
	"Passage": {
		"Psge", "Psge.",
	},
	"Path": {
		"Paths", "Paths.",
	},
	"Pike": {
		"Pikes", "Pikes.",
	},
	"Pine": {
		"Pne", "Pne.",
	},
	"Pines": {
		"Pnes", "Pnes.",
	},
	"Place": {
		"Pl", "Pl.",
	},
	"Plain": {
		"Pln", "Pln.",
	},
	"Plains": {
		"Plns", "Plns.",
	},
	"Plaza": {
		"Plz", "Plza", "Plz.", "Plza.",
	},
	"Point": {
		"Pt", "Pt.",
	},
	"Points": {
		"Pts", "Pts.",
	},
	"Port": {
		"Prt", "Prt.",
	},
	"Ports": {
		"Prts", "Prts.",
	},
	"Prairie": {
		"Pr", "Prr", "Pr.", "Prr.",
	},
	"Radial": {
		"Rad", "Radiel", "Radl", "Rad.", "Radiel.", "Radl.",
	},
	"Ranch": {
		"Ranches", "Rnch", "Rnchs", "Ranches.", "Rnch.", "Rnchs.",
	},
	"Rapid": {
		"Rpd", "Rpd.",
	},
	"Rapids": {
		"Rpds", "Rpds.",
	},
	"Rest": {
		"Rst", "Rst.",
	},
	"Ridge": {
		"Rdg", "Rdge", "Rdg.", "Rdge.", "Rdgs.",
	},
	"Ridges": {
		"Rdgs", "Rdges", "Rdges.",
	},
	"River": {
		"Riv", "Rvr", "Rivr", "Riv.", "Rvr.", "Rivr.",
	},
	"Road": {
		"Rd", "Rd.",
	},
	"Roads": {
		"Rds", "Rds.",
	},
	"Route": {
		"Rte", "Rte.",
	},
	"Shoal": {
		"Shl", "Shl.",
	},
	"Shoals": {
		"Shls", "Shls.",
	},
	"Shore": {
		"Shoar", "Shr", "Shoar.", "Shr.",
	},
	"Shores": {
		"Shoars", "Shrs", "Shoars.", "Shrs.",
	},
	"Skyway": {
		"Skwy", "Skwy.",
	},
	"Spring": {
		"Spg", "Spng", "Sprng", "Spg.", "Spng.", "Sprng.", "Spgs", "Spngs", "Sprngs", "Spgs.",
		"Spngs.", "Sprngs.",
	},
	"Square": {
		"Sq", "Sqr", "Sqre", "Squ", "Sq.", "Sqr.", "Sqre.", "Squ.",
	},
	"Squares": {
		"Sqs", "Sqrs", "Sqs.", "Sqrs.",
	},
	"Station": {
		"Sta", "Statn", "Stn", "Sta.", "Statn.", "Stn.",
	},
	"Stravenue": {
		"Stra", "Strav", "Straven", "Stravn", "Strvn", "Strvnue", "Stra.", "Strav.", "Straven.",
		"Stravn.", "Strvn.", "Strvnue.",
	},
	"Stream": {
		"Streme", "Strm", "Streme.", "Strm.",
	},
	"Street": {
		"St", "Strt", "Str", "St.", "Strt.", "Str.",
	},
	"Streets": {
		"Sts", "Sts.",
	},
	"Summit": {
		"Smt", "Sumit", "Sumitt", "Smt.", "Sumit.", "Sumitt.",
	},
	"Terrace": {
		"Ter", "Terr", "Ter.", "Terr.",
	},
	"Throughway": {
		"Trwy", "Trwy.",
	},
	"Trace": {
		"Trce", "Traces", "Trce.", "Traces.",
	},
	"Track": {
		"Tracks", "Trak", "Trk", "Trks", "Tracks.", "Trak.", "Trk.", "Trks.",
	},
	"Trafficway": {
		"Trfy", "Trfy.",
	},
	"Trail": {
		"Trails", "Trl", "Trls", "Trails.", "Trl.", "Trls.",
	},
	"Trailer": {
		"Trlr", "Trlrs", "Trlr.", "Trlrs.",
	},
	"Tunnel": {
		"Tunel", "Tunl", "Tunls", "Tunnels", "Tunnl", "Tunel.", "Tunl.", "Tunls.", "Tunnels.",
		"Tunnl.",
	},
	"Turnpike": {
		"Trnpk", "Turnpk", "Tpke", "Trnpk.", "Turnpk.", "Tpke.",
	},
	"Underpass": {
		"Upas", "Upas.",
	},
	"Union": {
		"Un", "Un.",
	},
	"Unions": {
		"Uns", "Uns.",
	},
	"Valley": {
		"Vally", "Vlly", "Vly", "Vally.", "Vlly.", "Vly.",
	},
	"Valleys": {
		"Vallys", "Vllys", "Vlys", "Vallys.", "Vllys.", "Vlys.",
	},
	"Viaduct": {
		"Vdct", "Via", "Viadct", "Vdct.", "Via.", "Viadct.",
	},
	"View": {
		"Vw", "Vw.",
	},
	"Views": {
		"Vws", "Vws.",
	},
	"Village": {
		"Vill", "Villag", "Villg", "Villiage", "Vlg", "Vill.", "Villag.", "Villg.", "Villiage.",
		"Vlg.",
	},
	"Villages": {
		"Vills", "Villags", "Villgs", "Villiages", "Vlgs", "Vills.", "Villags.", "Villgs.",
		"Villiages.", "Vlgs.",
	},
	"Ville": {
		"Vl", "Vl.",
	},
	"Vista": {
		"Vis", "Vist", "Vst", "Vsta", "Vis.", "Vist.", "Vst.", "Vsta.",
	},
	"Way": {
		"Wy", "Wy.",
	},
	"Well": {
		"Wl", "Wl.",
	},
	"Wells": {
		"Wls", "Wls.",
	},
}

// suffix rewrites specific to the Richmond extract
var localAbbreviations = map[string]string{
	"I-95":              "Interstate 95",
	"Roademergency=yes": "Road",
}

// trailing words that may follow the street type
var directionSuffixes = []string{
	"N", "N.", "N*", "North",
	"S", "S.", "S*", "South",
	"E", "E.", "E*", "East",
	"W", "W.", "W*", "West",
}

var directionAbbreviations = map[string]string{
	"N": "North", "N.": "North", "N*": "North",
	"S": "South", "S.": "South", "S*": "South",
	"E": "East", "E.": "East", "E*": "East",
	"W": "West", "W.": "West", "W*": "West",
}

// a direction letter after one of these is a unit ("Suite E"), not a direction
var suiteWords = []string{"Suite", "Ste", "Ste."}

var cityNames = map[string]string{
	"Manakin Sabot": "Manakin-Sabot",
	"Midolthian":    "Midlothian",
	"Richmond City": "Richmond",
	"richmond":      "Richmond",
	"glen Allen":    "Glen Allen",
}

var stateNames = map[string]string{
	"Virginia": "VA",
	"Va":       "VA",
	"va":       "VA",
}

var countryNames = map[string]string{
	"USA":                      "US",
	"United States":            "US",
	"United States of America": "US",
}

var denominationNames = map[string]string{
	"nondenominational":              "none",
	"None":                           "none",
	"presbyterian_church_in_america": "presbyterian",
	"united_methodist":               "methodist",
}

// GNIS county FIPS numbers in the Richmond region
var countyNames = map[string]string{
	"036": "Charles City",
	"041": "Chesterfield",
	"075": "Goochland",
	"085": "Hanover",
	"087": "Henrico",
	"095": "James City",
	"101": "King William",
	"127": "New Kent",
	"145": "Powhatan",
	"149": "Prince George",
	"159": "Richmond",
	"760": "Richmond (city)",
}

// Tag key families
var (
	StreetKeys   = []string{"addr:street"}
	CityKeys     = []string{"addr:city"}
	StateKeys    = []string{"addr:state", "gnis:ST_alpha", "is_in:state_code"}
	CountryKeys  = []string{"is_in:country", "addr:country"}
	MaxSpeedKeys = []string{"maxspeed", "maxspeed:advisory"}
	PostalKeys   = []string{
		"addr:postcode", "postal_code", "tiger:zip",
		"tiger:zip_left", "tiger:zip_left_1", "tiger:zip_left_2", "tiger:zip_left_3",
		"tiger:zip_left_4", "tiger:zip_left_5",
		"tiger:zip_right", "tiger:zip_right_1", "tiger:zip_right_2", "tiger:zip_right_3",
	}
	CountyNameKeys   = []string{"gnis:county_name", "gnis:County"}
	CountyNumberKeys = []string{"gnis:county_id", "gnis:County_num"}
	DenominationKeys = []string{"denomination"}
	ReligionKeys     = []string{"religion"}
)
