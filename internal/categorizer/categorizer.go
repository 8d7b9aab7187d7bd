// Package categorizer assigns expense categories based on the vendor name.
//
// Categorization is rule based: every rule maps a vendor keyword to one of the
// fixed categories. An exact match on the normalized vendor name wins over a
// keyword contained somewhere in it, and a vendor no rule matches falls back
// to CategoryOther.
package categorizer

import (
	"strings"

	"github.com/ryanuber/go-glob"
)

const (
	CategoryFood          = "Food"
	CategoryGroceries     = "Groceries"
	CategoryTransport     = "Transport"
	CategoryUtilities     = "Utilities"
	CategoryEntertainment = "Entertainment"
	CategoryShopping      = "Shopping"
	CategoryHealth        = "Health"
	CategoryEducation     = "Education"
	CategoryFinance       = "Finance"
	CategoryOther         = "Other"
)

// Categories is the fixed set of categories every expense is assigned to.
var Categories = []string{
	CategoryFood,
	CategoryGroceries,
	CategoryTransport,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHealth,
	CategoryEducation,
	CategoryFinance,
	CategoryOther,
}

// Rule maps a vendor keyword to a category. Keywords are matched
// case-insensitively against the vendor name.
type Rule struct {
	Keyword  string // The keyword, in lower case
	Category string // The category assigned on a match
}

// Rules are ordered: for keyword matches, the first rule whose keyword is
// contained in the vendor name wins. More specific keywords therefore come
// before keywords they contain, e.g. "amazon fresh" before "amazon".
var rules = []Rule{
	// Food & Dining
	{"swiggy", CategoryFood},
	{"zomato", CategoryFood},
	{"dominos", CategoryFood},
	{"mcdonalds", CategoryFood},
	{"kfc", CategoryFood},
	{"subway", CategoryFood},
	{"burger king", CategoryFood},
	{"pizza hut", CategoryFood},
	{"starbucks", CategoryFood},
	{"cafe coffee day", CategoryFood},

	// Groceries
	{"blinkit", CategoryGroceries},
	{"big bazaar", CategoryGroceries},
	{"dmart", CategoryGroceries},
	{"reliance fresh", CategoryGroceries},
	{"more supermarket", CategoryGroceries},
	{"zepto", CategoryGroceries},
	{"instamart", CategoryGroceries},
	{"amazon fresh", CategoryGroceries},
	{"grofers", CategoryGroceries},
	{"bigbasket", CategoryGroceries},

	// Transport
	{"uber", CategoryTransport},
	{"ola", CategoryTransport},
	{"rapido", CategoryTransport},
	{"irctc", CategoryTransport},
	{"indian railways", CategoryTransport},
	{"indigo", CategoryTransport},
	{"air india", CategoryTransport},
	{"spicejet", CategoryTransport},
	{"makemytrip", CategoryTransport},
	{"goibibo", CategoryTransport},

	// Utilities
	{"bescom", CategoryUtilities},
	{"bwssb", CategoryUtilities},
	{"tata power", CategoryUtilities},
	{"adani electricity", CategoryUtilities},
	{"jio", CategoryUtilities},
	{"airtel", CategoryUtilities},
	{"vi", CategoryUtilities},
	{"bsnl", CategoryUtilities},
	{"hathway", CategoryUtilities},
	{"act fibernet", CategoryUtilities},

	// Entertainment
	{"netflix", CategoryEntertainment},
	{"amazon prime", CategoryEntertainment},
	{"hotstar", CategoryEntertainment},
	{"disney", CategoryEntertainment},
	{"spotify", CategoryEntertainment},
	{"youtube premium", CategoryEntertainment},
	{"bookmyshow", CategoryEntertainment},
	{"pvr", CategoryEntertainment},
	{"inox", CategoryEntertainment},
	{"sony liv", CategoryEntertainment},

	// Shopping
	{"amazon", CategoryShopping},
	{"flipkart", CategoryShopping},
	{"myntra", CategoryShopping},
	{"ajio", CategoryShopping},
	{"nykaa", CategoryShopping},
	{"meesho", CategoryShopping},
	{"snapdeal", CategoryShopping},

	// Health & Wellness
	{"apollo pharmacy", CategoryHealth},
	{"medplus", CategoryHealth},
	{"1mg", CategoryHealth},
	{"pharmeasy", CategoryHealth},
	{"netmeds", CategoryHealth},
	{"cult.fit", CategoryHealth},
	{"curefit", CategoryHealth},
	{"lybrate", CategoryHealth},

	// Education
	{"udemy", CategoryEducation},
	{"coursera", CategoryEducation},
	{"unacademy", CategoryEducation},
	{"byju", CategoryEducation},
	{"vedantu", CategoryEducation},
	{"upgrad", CategoryEducation},

	// Finance
	{"zerodha", CategoryFinance},
	{"groww", CategoryFinance},
	{"paytm money", CategoryFinance},
	{"hdfc bank", CategoryFinance},
	{"sbi", CategoryFinance},
	{"icici", CategoryFinance},
	{"lic", CategoryFinance},
}

// Categorize returns the category for a vendor name.
//
// The vendor name is trimmed and lower cased, then matched in two passes:
// first against the exact keywords, then against the keywords as "contained
// anywhere" globs. Vendors without a match are categorized as CategoryOther.
func Categorize(vendorName string) string {
	name := strings.ToLower(strings.TrimSpace(vendorName))
	if name == "" {
		return CategoryOther
	}

	for _, rule := range rules {
		if glob.Glob(rule.Keyword, name) {
			return rule.Category
		}
	}

	for _, rule := range rules {
		if glob.Glob(glob.GLOB+rule.Keyword+glob.GLOB, name) {
			return rule.Category
		}
	}

	return CategoryOther
}

// Rules returns a copy of the full rule table.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}
