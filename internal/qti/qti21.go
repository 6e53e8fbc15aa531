package qti

import (
	"fmt"
	"strings"

	"github.com/quizmd/quizmd/internal/quiz"
)

// QTI 2.1 backend, for Canvas New Quizzes, Moodle 4+ and other modern LMS
// imports. Scoring is binary exact-match on the declared correct-response
// set: all-or-nothing, unlike 1.2's additive model. That asymmetry follows
// from each version's native response-processing primitives.
type exporter21 struct {
	collection quiz.Collection
}

func (e *exporter21) Version() Version { return V21 }

func (e *exporter21) Manifest() string {
	var resources []string
	for _, q := range e.collection.Quizzes {
		resources = append(resources, fmt.Sprintf(
			"<resource identifier=%q type=\"imsqti_item_xmlv2p1\" href=\"items/%s.xml\">\n"+
				"  <file href=\"items/%s.xml\"/>\n"+
				"</resource>",
			q.Identifier, q.Identifier, q.Identifier))
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<manifest identifier="%s"
          xmlns="http://www.imsglobal.org/xsd/imscp_v1p1"
          xmlns:imsmd="http://ltsc.ieee.org/xsd/LOM"
          xmlns:imsqti="http://www.imsglobal.org/xsd/imsqti_v2p1">
  <metadata>
    <schema>IMS Content</schema>
    <schemaversion>1.2</schemaversion>
    <imsmd:lom>
      <imsmd:general>
        <imsmd:title>
          <imsmd:string>%s</imsmd:string>
        </imsmd:title>
      </imsmd:general>
    </imsmd:lom>
  </metadata>
  <organizations/>
  <resources>
    <resource identifier="assessment" type="imsqti_test_xmlv2p1" href="assessment.xml">
      <file href="assessment.xml"/>
    </resource>
%s
  </resources>
</manifest>
`, e.collection.Identifier, xmlEscape(e.collection.Title), strings.Join(resources, "\n"))
}

func (e *exporter21) Assessment() string {
	var refs []string
	for _, q := range e.collection.Quizzes {
		refs = append(refs, fmt.Sprintf(
			"<assessmentItemRef identifier=%q href=\"items/%s.xml\"/>",
			q.Identifier, q.Identifier))
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<assessmentTest xmlns="http://www.imsglobal.org/xsd/imsqti_v2p1"
               xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
               xsi:schemaLocation="http://www.imsglobal.org/xsd/imsqti_v2p1 http://www.imsglobal.org/xsd/imsqti_v2p1.xsd"
               identifier="%s"
               title="%s">
  <outcomeDeclaration identifier="SCORE" cardinality="single" baseType="float">
    <defaultValue>
      <value>0</value>
    </defaultValue>
  </outcomeDeclaration>
  <testPart identifier="testPart1" navigationMode="nonlinear" submissionMode="individual">
    <assessmentSection identifier="section1" title="Main Section" visible="true">
%s
    </assessmentSection>
  </testPart>
</assessmentTest>
`, e.collection.Identifier, xmlEscape(e.collection.Title), strings.Join(refs, "\n"))
}

func (e *exporter21) Items() map[string]string {
	items := map[string]string{}
	for _, q := range e.collection.Quizzes {
		items[fmt.Sprintf("items/%s.xml", q.Identifier)] = e.item(q)
	}
	return items
}

func (e *exporter21) item(q quiz.Quiz) string {
	var choices []string
	for _, a := range q.Answers {
		choices = append(choices, fmt.Sprintf(
			"<simpleChoice identifier=%q>%s</simpleChoice>",
			a.Identifier, xmlContent(a.Text)))
	}

	var correctValues []string
	for _, a := range q.CorrectAnswers() {
		correctValues = append(correctValues, fmt.Sprintf("<value>%s</value>", a.Identifier))
	}

	cardinality := "single"
	maxChoices := 1
	if q.IsMultipleChoice() {
		cardinality = "multiple"
		maxChoices = 0 // unbounded
	}

	feedbackDecl := ""
	modalFeedback := ""
	if q.Content != "" {
		feedbackDecl = "<outcomeDeclaration identifier=\"FEEDBACK\" cardinality=\"single\" baseType=\"identifier\"/>\n"
		modalFeedback = fmt.Sprintf(
			"<modalFeedback outcomeIdentifier=\"FEEDBACK\" showHide=\"show\" identifier=\"general\">\n"+
				"  <div>%s</div>\n"+
				"</modalFeedback>\n",
			xmlContent(q.Content))
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<assessmentItem xmlns="http://www.imsglobal.org/xsd/imsqti_v2p1"
               xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
               xsi:schemaLocation="http://www.imsglobal.org/xsd/imsqti_v2p1 http://www.imsglobal.org/xsd/imsqti_v2p1.xsd"
               identifier="%s"
               title="%s"
               adaptive="false"
               timeDependent="false">
  <responseDeclaration identifier="RESPONSE" cardinality="%s" baseType="identifier">
    <correctResponse>
%s
    </correctResponse>
  </responseDeclaration>
  <outcomeDeclaration identifier="SCORE" cardinality="single" baseType="float">
    <defaultValue>
      <value>0</value>
    </defaultValue>
  </outcomeDeclaration>
%s  <itemBody>
    <div class="question">
      %s
    </div>
    <choiceInteraction responseIdentifier="RESPONSE" shuffle="false" maxChoices="%d">
%s
    </choiceInteraction>
  </itemBody>
  <responseProcessing>
    <responseCondition>
      <responseIf>
        <match>
          <variable identifier="RESPONSE"/>
          <correct identifier="RESPONSE"/>
        </match>
        <setOutcomeValue identifier="SCORE">
          <baseValue baseType="float">1</baseValue>
        </setOutcomeValue>
      </responseIf>
    </responseCondition>
  </responseProcessing>
%s</assessmentItem>
`, q.Identifier, itemTitle(q.Question), cardinality,
		strings.Join(correctValues, "\n"), feedbackDecl, xmlContent(q.Question),
		maxChoices, strings.Join(choices, "\n"), modalFeedback)
}
