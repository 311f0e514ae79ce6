package proceedings

import "strings"

// volumeYears maps LNI volume folder names to their conference year.
// Loaded once at process start, never mutated.
var volumeYears = map[string]int{
	"lni37":  2003,
	"lni52":  2004,
	"lni66":  2005,
	"lni87":  2006,
	"lni111": 2007,
	"lni132": 2008,
	"lni153": 2009,
	"lni169": 2010,
	"lni188": 2011,
	"lni207": 2012,
	"lni218": 2013,
	"lni233": 2014,
	"lni247": 2015,
	"lni262": 2016,
	"lni273": 2017,
	"lni284": 2018,
	"lni297": 2019,
	"lni308": 2020,
	"lni316": 2021,
	"lni322": 2022,
	"lni338": 2023,
	"lni356": 2024,
	"lni369": 2025,
}

// YearForFolder returns the conference year of a volume folder, or zero
// for unknown folder names.
func YearForFolder(name string) int {
	return volumeYears[strings.ToLower(name)]
}
