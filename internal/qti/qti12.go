package qti

import (
	"fmt"
	"strings"

	"github.com/quizmd/quizmd/internal/quiz"
)

// QTI 1.2 ("classic") backend. This is the dialect Canvas Classic Quizzes,
// Blackboard and older LMS imports understand. Multi-answer items use 1.2's
// additive respconditions: each selected correct answer adds 100/N points and
// each selected wrong answer subtracts the same amount, so a perfect
// selection scores 100 and every stray pick cancels one correct pick.
type exporter12 struct {
	collection quiz.Collection
}

func (e *exporter12) Version() Version { return V12 }

func (e *exporter12) Manifest() string {
	var resources []string
	for _, q := range e.collection.Quizzes {
		resources = append(resources, fmt.Sprintf(
			"<resource identifier=%q type=\"imsqti_item_xmlv1p2\" href=\"items/%s.xml\">\n"+
				"  <file href=\"items/%s.xml\"/>\n"+
				"</resource>",
			q.Identifier, q.Identifier, q.Identifier))
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<manifest identifier="%s"
          xmlns="http://www.imsglobal.org/xsd/imscp_v1p1"
          xmlns:imsmd="http://www.imsglobal.org/xsd/imsmd_v1p2"
          xmlns:imsqti="http://www.imsglobal.org/xsd/ims_qtiasiv1p2">
  <metadata>
    <schema>IMS Content</schema>
    <schemaversion>1.2</schemaversion>
  </metadata>
  <organizations/>
  <resources>
    <resource identifier="assessment" type="imsqti_assessment_xmlv1p2" href="assessment.xml">
      <file href="assessment.xml"/>
    </resource>
%s
  </resources>
</manifest>
`, e.collection.Identifier, strings.Join(resources, "\n"))
}

func (e *exporter12) Assessment() string {
	var refs []string
	for _, q := range e.collection.Quizzes {
		refs = append(refs, fmt.Sprintf("<itemref linkrefid=%q/>", q.Identifier))
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<questestinterop xmlns="http://www.imsglobal.org/xsd/ims_qtiasiv1p2">
  <assessment ident="%s" title="%s">
    <qtimetadata>
      <qtimetadatafield>
        <fieldlabel>qmd_assessmenttype</fieldlabel>
        <fieldentry>Assessment</fieldentry>
      </qtimetadatafield>
    </qtimetadata>
    <section ident="root_section">
      <selection_ordering>
        <selection/>
      </selection_ordering>
%s
    </section>
  </assessment>
</questestinterop>
`, e.collection.Identifier, xmlEscape(e.collection.Title), strings.Join(refs, "\n"))
}

func (e *exporter12) Items() map[string]string {
	items := map[string]string{}
	for _, q := range e.collection.Quizzes {
		var xml string
		if q.IsMultipleChoice() {
			xml = e.multipleChoiceItem(q)
		} else {
			xml = e.singleChoiceItem(q)
		}
		items[fmt.Sprintf("items/%s.xml", q.Identifier)] = xml
	}
	return items
}

func (e *exporter12) responseLabels(q quiz.Quiz) string {
	var labels []string
	for _, a := range q.Answers {
		labels = append(labels, fmt.Sprintf(
			"<response_label ident=%q>\n"+
				"  <material>\n"+
				"    <mattext texttype=\"text/html\">%s</mattext>\n"+
				"  </material>\n"+
				"</response_label>",
			a.Identifier, xmlContent(a.Text)))
	}
	return strings.Join(labels, "\n")
}

func (e *exporter12) feedback(q quiz.Quiz) string {
	if q.Content == "" {
		return ""
	}
	return fmt.Sprintf(
		"<itemfeedback ident=\"general_fb\">\n"+
			"  <material>\n"+
			"    <mattext texttype=\"text/html\">%s</mattext>\n"+
			"  </material>\n"+
			"</itemfeedback>\n",
		xmlContent(q.Content))
}

func (e *exporter12) singleChoiceItem(q quiz.Quiz) string {
	correct := q.CorrectAnswers()[0]

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<questestinterop xmlns="http://www.imsglobal.org/xsd/ims_qtiasiv1p2">
  <item ident="%s" title="%s">
    <itemmetadata>
      <qtimetadata>
        <qtimetadatafield>
          <fieldlabel>question_type</fieldlabel>
          <fieldentry>multiple_choice_question</fieldentry>
        </qtimetadatafield>
      </qtimetadata>
    </itemmetadata>
    <presentation>
      <material>
        <mattext texttype="text/html">%s</mattext>
      </material>
      <response_lid ident="response1" rcardinality="Single">
        <render_choice>
%s
        </render_choice>
      </response_lid>
    </presentation>
    <resprocessing>
      <outcomes>
        <decvar maxvalue="100" minvalue="0" varname="SCORE" vartype="Decimal"/>
      </outcomes>
      <respcondition continue="No">
        <conditionvar>
          <varequal respident="response1">%s</varequal>
        </conditionvar>
        <setvar action="Set" varname="SCORE">100</setvar>
      </respcondition>
    </resprocessing>
%s  </item>
</questestinterop>
`, q.Identifier, itemTitle(q.Question), xmlContent(q.Question),
		e.responseLabels(q), correct.Identifier, e.feedback(q))
}

func (e *exporter12) multipleChoiceItem(q quiz.Quiz) string {
	correct := q.CorrectAnswers()
	pointsPer := 100.0 / float64(len(correct))

	var conditions []string
	for _, a := range correct {
		conditions = append(conditions, fmt.Sprintf(
			"<respcondition continue=\"Yes\">\n"+
				"  <conditionvar>\n"+
				"    <varequal respident=\"response1\">%s</varequal>\n"+
				"  </conditionvar>\n"+
				"  <setvar action=\"Add\" varname=\"SCORE\">%.2f</setvar>\n"+
				"</respcondition>",
			a.Identifier, pointsPer))
	}
	for _, a := range q.IncorrectAnswers() {
		conditions = append(conditions, fmt.Sprintf(
			"<respcondition continue=\"Yes\">\n"+
				"  <conditionvar>\n"+
				"    <varequal respident=\"response1\">%s</varequal>\n"+
				"  </conditionvar>\n"+
				"  <setvar action=\"Add\" varname=\"SCORE\">-%.2f</setvar>\n"+
				"</respcondition>",
			a.Identifier, pointsPer))
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<questestinterop xmlns="http://www.imsglobal.org/xsd/ims_qtiasiv1p2">
  <item ident="%s" title="%s">
    <itemmetadata>
      <qtimetadata>
        <qtimetadatafield>
          <fieldlabel>question_type</fieldlabel>
          <fieldentry>multiple_answers_question</fieldentry>
        </qtimetadatafield>
      </qtimetadata>
    </itemmetadata>
    <presentation>
      <material>
        <mattext texttype="text/html">%s</mattext>
      </material>
      <response_lid ident="response1" rcardinality="Multiple">
        <render_choice>
%s
        </render_choice>
      </response_lid>
    </presentation>
    <resprocessing>
      <outcomes>
        <decvar maxvalue="100" minvalue="0" varname="SCORE" vartype="Decimal"/>
      </outcomes>
%s
    </resprocessing>
%s  </item>
</questestinterop>
`, q.Identifier, itemTitle(q.Question), xmlContent(q.Question),
		e.responseLabels(q), strings.Join(conditions, "\n"), e.feedback(q))
}
