// Package pipeline turns configured rules into steps and runs them over
// styled text.
//
// Each rule kind maps to one Step:
//
//   - replace, remove: ReplaceStep
//   - lower, upper, title, sentence: CaseStep
//   - simplify: SimplifyStep
//   - style: StyleStep
//
// A Pipeline is meant to be fed a document chunk by chunk. Sentence case
// remembers whether the previous chunk ended a sentence, and every step
// accumulates the number of changes it made, reported by Counts.
//
//	p, err := pipeline.Build(cfg.Rules)
//	if err != nil {
//	    return err
//	}
//	for _, line := range lines {
//	    fmt.Println(p.Process(styled.ParseMarkup(line)).Markup())
//	}
package pipeline
