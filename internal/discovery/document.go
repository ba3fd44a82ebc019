package discovery

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
)

// document mirrors the wopi-discovery XML schema, reduced to the elements
// the host uses.
type document struct {
	XMLName  xml.Name  `xml:"wopi-discovery"`
	NetZones []netZone `xml:"net-zone"`
}

type netZone struct {
	Name string `xml:"name,attr"`
	Apps []app  `xml:"app"`
}

type app struct {
	Name    string   `xml:"name,attr"`
	Actions []action `xml:"action"`
}

type action struct {
	Name   string `xml:"name,attr"`
	Ext    string `xml:"ext,attr"`
	URLSrc string `xml:"urlsrc,attr"`
}

// placeholderPattern matches the optional query segments discovery embeds in
// urlsrc, e.g. <ui=UI_LLCC&>. Segments the host does not fill in are
// stripped before use.
var placeholderPattern = regexp.MustCompile(`<[^<>]*&>`)

func parseDiscovery(data []byte) (*document, error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse discovery document: %w", err)
	}
	return &doc, nil
}

// actionURL finds the editor URL for an app type and file extension. The
// edit action is preferred; view is the fallback for read-only formats.
func (d *document) actionURL(appType, ext string) (string, error) {
	var viewURL string

	for _, zone := range d.NetZones {
		for _, a := range zone.Apps {
			if !strings.EqualFold(a.Name, appType) {
				continue
			}
			for _, act := range a.Actions {
				if !strings.EqualFold(act.Ext, ext) {
					continue
				}
				switch act.Name {
				case "edit":
					return stripPlaceholders(act.URLSrc), nil
				case "view":
					if viewURL == "" {
						viewURL = stripPlaceholders(act.URLSrc)
					}
				}
			}
		}
	}

	if viewURL != "" {
		return viewURL, nil
	}
	return "", fmt.Errorf("no discovery action for app %q ext %q", appType, ext)
}

func stripPlaceholders(urlsrc string) string {
	out := placeholderPattern.ReplaceAllString(urlsrc, "")
	return strings.TrimRight(out, "?&")
}
