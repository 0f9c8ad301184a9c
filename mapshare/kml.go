package mapshare

import (
	"encoding/xml"
	"strings"
)

// Named properties every qualifying placemark must carry. The names match
// the feed's ExtendedData entries exactly.
var requiredProperties = []struct {
	name   string
	assign func(*Position, string)
}{
	{"Id", func(p *Position, v string) { p.ID = v }},
	{"IMEI", func(p *Position, v string) { p.IMEI = v }},
	{"Time UTC", func(p *Position, v string) { p.TimeUTC = v }},
	{"Time", func(p *Position, v string) { p.Time = v }},
	{"Latitude", func(p *Position, v string) { p.Latitude = v }},
	{"Longitude", func(p *Position, v string) { p.Longitude = v }},
	{"Elevation", func(p *Position, v string) { p.Elevation = v }},
	{"Velocity", func(p *Position, v string) { p.Velocity = v }},
	{"Course", func(p *Position, v string) { p.Course = v }},
	{"Valid GPS Fix", func(p *Position, v string) { p.ValidGPSFix = strings.ToLower(v) }},
}

type kmlFeed struct {
	Document *struct {
		Folder *struct {
			Placemarks []kmlPlacemark `xml:"Placemark"`
		} `xml:"Folder"`
	} `xml:"Document"`
}

type kmlPlacemark struct {
	ExtendedData *struct {
		Data []kmlData `xml:"Data"`
	} `xml:"ExtendedData"`
}

type kmlData struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

// ExtractPlacemarks parses a route document into position records in
// document order. The chronology of the result is whatever the document's
// order is; no sorting is applied.
//
// An absent Document/Folder/Placemark path is a valid empty feed and yields
// an empty result. Placemarks with no ExtendedData container are skipped:
// route lines and other non-record placemarks share the document with the
// position entries. A placemark that does carry the container but is missing
// a required property fails the whole call with an ExtractionError.
func ExtractPlacemarks(doc []byte) ([]Position, error) {
	var feed kmlFeed
	if err := xml.Unmarshal(doc, &feed); err != nil {
		return nil, &ExtractionError{Err: err}
	}

	if feed.Document == nil || feed.Document.Folder == nil {
		return nil, nil
	}

	var out []Position
	for _, pm := range feed.Document.Folder.Placemarks {
		if pm.ExtendedData == nil {
			continue
		}

		// Last entry wins when the feed repeats a name.
		values := make(map[string]string, len(pm.ExtendedData.Data))
		for _, d := range pm.ExtendedData.Data {
			values[d.Name] = d.Value
		}

		var pos Position
		for _, prop := range requiredProperties {
			v, ok := values[prop.name]
			if !ok {
				return nil, &ExtractionError{Property: prop.name}
			}
			prop.assign(&pos, v)
		}
		if v, ok := values["Visibility"]; ok {
			pos.Visibility = strings.ToLower(v)
		}

		out = append(out, pos)
	}
	return out, nil
}
