// Package vetdex embeds the veterinary drug query engine in a Go program.
//
// The client loads a drug knowledge base, interprets free-text questions
// (Russian by default), finds the drug they refer to and returns only the
// requested slices of its record.
//
//	client, _ := vetdex.New(ctx, vetdex.WithTabularFile("drugs.csv"))
//	defer client.Close()
//
//	ans, err := client.Ask(ctx, vetdex.AskRequest{Query: "дозировка мелоксикам для собак"})
//	switch {
//	case errors.Is(err, vetdex.ErrDrugNotFound):
//	    // nothing matched
//	case ans.Status == vetdex.StatusMultiple:
//	    // let the user pick one of ans.Drugs, then
//	    ans, err = client.Lookup(ctx, ans.Drugs[0].Name(), ans.Categories, ans.Animal)
//	}
//
// The knowledge base may instead come from WithRecords or from a Redis
// snapshot written by the vetimport tool (WithRedis).
package vetdex
