package models

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// QueryResult is the root of a Wolfram|Alpha v2 query response.
// Success and Error are "true" or "false" on the wire.
//
// Pods, errors, future topics, did you means and tips are collected from
// anywhere below the root, in document order.
type QueryResult struct {
	XMLName      xml.Name
	Success      string
	Error        string
	Pods         []Pod
	Errors       []APIError
	FutureTopics []FutureTopic
	DidYouMeans  []DidYouMeans
	Tips         []Tips
}

func (qr *QueryResult) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if start.Name.Local != "queryresult" {
		return fmt.Errorf("expected element type <queryresult> but have <%s>", start.Name.Local)
	}
	qr.XMLName = start.Name
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "success":
			qr.Success = attr.Value
		case "error":
			qr.Error = attr.Value
		}
	}
	var depth int
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var err error
			switch t.Name.Local {
			case "pod":
				var pod Pod
				err = d.DecodeElement(&pod, &t)
				qr.Pods = append(qr.Pods, pod)
			case "error":
				var e APIError
				err = d.DecodeElement(&e, &t)
				qr.Errors = append(qr.Errors, e)
			case "futuretopic":
				var ft FutureTopic
				err = d.DecodeElement(&ft, &t)
				qr.FutureTopics = append(qr.FutureTopics, ft)
			case "didyoumeans":
				var dym DidYouMeans
				err = d.DecodeElement(&dym, &t)
				qr.DidYouMeans = append(qr.DidYouMeans, dym)
			case "tips":
				var tips Tips
				err = d.DecodeElement(&tips, &t)
				qr.Tips = append(qr.Tips, tips)
			default:
				depth++
			}
			if err != nil {
				return err
			}
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

type Pod struct {
	Title    string
	Position int
	// Plaintext contains the text of every plaintext element inside the pod,
	// at any depth, in document order.
	Plaintext []string
}

func (p *Pod) UnmarshalXML(d *xml.Decoder, start xml.StartElement) (err error) {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "title":
			p.Title = attr.Value
		case "position":
			if p.Position, err = strconv.Atoi(attr.Value); err != nil {
				return fmt.Errorf("invalid pod position %q: %w", attr.Value, err)
			}
		}
	}
	var depth int
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "plaintext" {
				depth++
				continue
			}
			var text string
			if err = d.DecodeElement(&text, &t); err != nil {
				return err
			}
			p.Plaintext = append(p.Plaintext, text)
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

type APIError struct {
	Code string `xml:"code"`
	Msg  string `xml:"msg"`
}

type FutureTopic struct {
	Topic string `xml:"topic,attr"`
	Msg   string `xml:"msg,attr"`
}

type DidYouMeans struct {
	DidYouMean []string `xml:"didyoumean"`
}

type Tips struct {
	Tip []Tip `xml:"tip"`
}

type Tip struct {
	Text string `xml:"text,attr"`
}
