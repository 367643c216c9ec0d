package notifier

import (
	"strconv"

	"github.com/aws/aws-lambda-go/events"
)

// image is a stream record image. Accessors never panic: a missing attribute
// or one of an unexpected type reads as the zero value.
type image map[string]events.DynamoDBAttributeValue

func (img image) str(name, fallback string) string {
	av, ok := img[name]
	if !ok || av.DataType() != events.DataTypeString {
		return fallback
	}
	return av.String()
}

func (img image) number(name string) int {
	av, ok := img[name]
	if !ok || av.DataType() != events.DataTypeNumber {
		return 0
	}
	f, err := strconv.ParseFloat(av.Number(), 64)
	if err != nil {
		return 0
	}
	return int(f)
}

func (img image) list(name string) []events.DynamoDBAttributeValue {
	av, ok := img[name]
	if !ok || av.DataType() != events.DataTypeList {
		return nil
	}
	return av.List()
}

// memberNames returns the non-empty name of every member map in the list.
func memberNames(members []events.DynamoDBAttributeValue) []string {
	var names []string
	for _, m := range members {
		if m.DataType() != events.DataTypeMap {
			continue
		}
		if name := image(m.Map()).str("name", ""); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// stringValues returns the non-empty strings of a list.
func stringValues(list []events.DynamoDBAttributeValue) []string {
	var values []string
	for _, v := range list {
		if v.DataType() == events.DataTypeString && v.String() != "" {
			values = append(values, v.String())
		}
	}
	return values
}
