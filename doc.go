// Package embergo is an experiment-artifact store for embedding research.
//
// It persists three artifact kinds under stable, structural,
// content-derived identity: optimization problems (bias-weighted graphs),
// embeddings of one graph's variables into chains of another graph's
// nodes, and sample sets produced by running a problem through an
// embedding. Re-running an experiment deterministically reuses or appends
// to prior results.
//
// # Quick Start
//
//	ctx := context.Background()
//	db, _ := embergo.Open("./EmberaDB")
//	defer db.Close()
//
//	p := model.NewProblem(model.Spin)
//	p.SetQuadratic("a", "b", -1)
//
//	fp, _ := db.PutProblem(ctx, p)
//	same, _ := db.GetProblem(ctx, embergo.ProblemNamed(fp), 0)
//
// # Identity
//
// Problems and graphs are fingerprinted by the degree histogram of their
// interaction structure: deterministic across processes, stable under node
// relabeling, and deliberately insensitive to bias values. Embeddings are
// fingerprinted by their quality key plus a structural-hash suffix, so two
// embeddings with equal quality but different chain placement stay
// distinguishable.
//
// # Ranked Retrieval
//
// Multiple embeddings for the same (source, target) pair coexist;
// retrieval sorts them by quality key, best (fewest, shortest chains)
// first:
//
//	best, _ := db.GetEmbedding(ctx, embergo.GraphOf(src), embergo.GraphOf(tgt), 0)
//
// # Tags
//
// Every put/get accepts free-form tag segments that namespace experiment
// variants (for example, which heuristic produced an embedding). Tags are
// not content-derived: retrieval filters conjunctively on them, and two
// writers using different tags are never merged.
//
// # Merge-on-Write
//
// Writing a sample set to a location that already holds one concatenates
// the two; sample sets only grow. Within a process, writers to the same
// location are serialized; across processes the last rename wins (see
// Store.PutSampleSet).
package embergo
