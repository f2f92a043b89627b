package constvars

var CustomValidationErrorMessages = map[string]string{
	"required":        "is required",
	"oneof":           "should be one of [%s]",
	"gt":              "should be greater than %s",
	"len":             "should be %s characters long",
	"email":           "should be a valid email",
	"uuid":            "should be a valid UUID",
	"datetime":        "should match the format %s",
	"timezone":        "should be a valid IANA timezone",
	"iso4217":         "should be a valid ISO 4217 currency code",
	"decimal_gt_zero": "should be greater than zero",
}

var TagsWithParams = map[string]bool{
	"oneof":    true,
	"gt":       true,
	"len":      true,
	"datetime": true,
}
