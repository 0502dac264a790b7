package region

// entry describes one row of the static region term table.  The table is
// hand-ordered: resolution scans it top to bottom and the first matching
// entry wins, ties going to declaration order rather than match specificity.
// This mirrors observed product behavior — multi-country inputs could
// mis-resolve under either rule, so the observed one is preserved.
type entry struct {
	// Key is the canonical region code ("se", "de", "eu", "us").
	Key string

	// Terms are matched against the normalized governing-law input.
	// Multi-word terms match as substrings; single-word terms must match a
	// whole token, which keeps short country fragments (the "in" of India)
	// from firing inside unrelated prose.
	Terms []string

	Currency               string
	TaxTerm                string
	DataProtectionLawLong  string
	DataProtectionLawShort string
	CountryName            string

	// Fallbacks is the region chain consulted for vocabulary the entry does
	// not define locally; EU members fall back to eu then global.
	Fallbacks []string
}

const gdprLong = "the General Data Protection Regulation (EU) 2016/679"

var euFallback = []string{"eu", "global"}

var regionTable = []entry{
	{
		Key:                    "se",
		Terms:                  []string{"sweden", "swedish", "sverige", "stockholm", "gothenburg"},
		Currency:               "SEK",
		TaxTerm:                "moms (Swedish VAT)",
		DataProtectionLawLong:  gdprLong,
		DataProtectionLawShort: "GDPR",
		CountryName:            "Sweden",
		Fallbacks:              euFallback,
	},
	{
		Key:                    "de",
		Terms:                  []string{"germany", "german", "deutschland", "berlin", "munich", "frankfurt"},
		Currency:               "EUR",
		TaxTerm:                "Umsatzsteuer (German VAT)",
		DataProtectionLawLong:  gdprLong + " and the Bundesdatenschutzgesetz",
		DataProtectionLawShort: "GDPR",
		CountryName:            "Germany",
		Fallbacks:              euFallback,
	},
	{
		Key:                    "fr",
		Terms:                  []string{"france", "french", "paris"},
		Currency:               "EUR",
		TaxTerm:                "TVA (French VAT)",
		DataProtectionLawLong:  gdprLong + " and the Loi Informatique et Libertés",
		DataProtectionLawShort: "GDPR",
		CountryName:            "France",
		Fallbacks:              euFallback,
	},
	{
		Key:                    "nl",
		Terms:                  []string{"netherlands", "dutch", "amsterdam", "holland"},
		Currency:               "EUR",
		TaxTerm:                "BTW (Dutch VAT)",
		DataProtectionLawLong:  gdprLong,
		DataProtectionLawShort: "GDPR",
		CountryName:            "the Netherlands",
		Fallbacks:              euFallback,
	},
	{
		Key:                    "dk",
		Terms:                  []string{"denmark", "danish", "copenhagen"},
		Currency:               "DKK",
		TaxTerm:                "moms (Danish VAT)",
		DataProtectionLawLong:  gdprLong,
		DataProtectionLawShort: "GDPR",
		CountryName:            "Denmark",
		Fallbacks:              euFallback,
	},
	{
		Key:                    "uk",
		Terms:                  []string{"united kingdom", "england", "english law", "wales", "scotland", "london", "britain", "british"},
		Currency:               "GBP",
		TaxTerm:                "VAT",
		DataProtectionLawLong:  "the UK General Data Protection Regulation and the Data Protection Act 2018",
		DataProtectionLawShort: "UK GDPR",
		CountryName:            "the United Kingdom",
		Fallbacks:              []string{"global"},
	},
	{
		Key:                    "ie",
		Terms:                  []string{"ireland", "irish", "dublin"},
		Currency:               "EUR",
		TaxTerm:                "VAT",
		DataProtectionLawLong:  gdprLong + " and the Irish Data Protection Act 2018",
		DataProtectionLawShort: "GDPR",
		CountryName:            "Ireland",
		Fallbacks:              euFallback,
	},
	{
		Key:                    "us",
		Terms:                  []string{"united states", "usa", "delaware", "new york", "california", "texas", "washington state"},
		Currency:               "USD",
		TaxTerm:                "applicable sales tax",
		DataProtectionLawLong:  "the California Consumer Privacy Act and applicable US state privacy laws",
		DataProtectionLawShort: "CCPA",
		CountryName:            "the United States",
		Fallbacks:              []string{"global"},
	},
	{
		Key:                    "ca",
		Terms:                  []string{"canada", "canadian", "ontario", "toronto", "british columbia"},
		Currency:               "CAD",
		TaxTerm:                "GST/HST",
		DataProtectionLawLong:  "the Personal Information Protection and Electronic Documents Act",
		DataProtectionLawShort: "PIPEDA",
		CountryName:            "Canada",
		Fallbacks:              []string{"global"},
	},
	{
		Key:                    "au",
		Terms:                  []string{"australia", "australian", "sydney", "melbourne", "new south wales"},
		Currency:               "AUD",
		TaxTerm:                "GST",
		DataProtectionLawLong:  "the Privacy Act 1988 (Cth)",
		DataProtectionLawShort: "Privacy Act",
		CountryName:            "Australia",
		Fallbacks:              []string{"global"},
	},
	{
		Key:                    "in",
		Terms:                  []string{"india", "indian", "mumbai", "delhi", "bangalore"},
		Currency:               "INR",
		TaxTerm:                "GST",
		DataProtectionLawLong:  "the Digital Personal Data Protection Act, 2023",
		DataProtectionLawShort: "DPDP Act",
		CountryName:            "India",
		Fallbacks:              []string{"global"},
	},
	{
		Key:                    "eu",
		Terms:                  []string{"european union", "eu law", "brussels", "eea"},
		Currency:               "EUR",
		TaxTerm:                "VAT",
		DataProtectionLawLong:  gdprLong,
		DataProtectionLawShort: "GDPR",
		CountryName:            "the European Union",
		Fallbacks:              []string{"global"},
	},
	{
		Key:                    "global",
		Terms:                  []string{"international", "worldwide"},
		Currency:               "USD",
		TaxTerm:                "applicable taxes",
		DataProtectionLawLong:  "applicable data protection law",
		DataProtectionLawShort: "applicable data protection law",
		CountryName:            "the relevant jurisdiction",
		Fallbacks:              nil,
	},
}
