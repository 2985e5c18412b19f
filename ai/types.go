package ai

// AttributeKeys lists the attribute families extraction is asked to
// recognize. The extractor passes the list to the model; values for
// other keys the model volunteers are kept as-is.
var AttributeKeys = []string{
	"color",
	"size",
	"type",
	"material",
	"condition",
	"distance",
}
