package models

import (
	"encoding/xml"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestQueryResultUnmarshal(t *testing.T) {
	doc := `<queryresult success='true' error='false'>
  <pod title='Input' position='100'><subpod><plaintext>pi</plaintext></subpod></pod>
  <pods>
    <pod title='Result' position='200'>
      <plaintext>direct</plaintext>
      <subpod><subpod><plaintext>deep</plaintext></subpod></subpod>
      <subpod><img src='x'/><plaintext/></subpod>
    </pod>
  </pods>
  <assumptions><tips><tip text='nested tip'/></tips></assumptions>
  <futuretopic topic='T' msg='M'/>
</queryresult>`
	var actual QueryResult
	if err := xml.Unmarshal([]byte(doc), &actual); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := QueryResult{
		Success: "true",
		Error:   "false",
		Pods: []Pod{
			{Title: "Input", Position: 100, Plaintext: []string{"pi"}},
			{Title: "Result", Position: 200, Plaintext: []string{"direct", "deep", ""}},
		},
		FutureTopics: []FutureTopic{{Topic: "T", Msg: "M"}},
		Tips:         []Tips{{Tip: []Tip{{Text: "nested tip"}}}},
	}
	if diff := cmp.Diff(expected, actual, cmpopts.IgnoreFields(QueryResult{}, "XMLName")); diff != "" {
		t.Error(diff)
	}
}

func TestQueryResultUnmarshalErrors(t *testing.T) {
	docs := []string{
		`<html><body>hello</body></html>`,
		`<queryresult success='true' error='false'><pod title='A' position='first'/></queryresult>`,
		`<queryresult success='true' error='false'><pods><pod title='A' position='1'>`,
	}
	for _, doc := range docs {
		var qr QueryResult
		if err := xml.Unmarshal([]byte(doc), &qr); err == nil {
			t.Errorf("%s: expected error", doc)
		}
	}
}
