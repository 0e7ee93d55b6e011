package prefixindex

import "iter"

// View is the common surface both Index and its derived filter/map
// decorators expose, per the spec's "derived views" note (4.4): a filter
// view wraps a base index with a predicate applied to result streams, and
// a mapping view applies a projection; both preserve the underlying
// snapshot and never mutate it. Collapsing the original's decorator/filter/
// list class hierarchy into two small transparent wrappers over one stream
// primitive is the redesign the spec's design notes call for (9,
// "Polymorphism").
type View[M any] interface {
	SearchStream(query string) iter.Seq[M]
	SearchExactStream(query string) iter.Seq[M]
	GetAll() iter.Seq[M]
}

// filterView applies a predicate to every stream a base View produces.
// Composing filterViews yields a conjunction, since each wrapped stream is
// itself filtered again by the next predicate.
type filterView[M any] struct {
	base View[M]
	pred func(M) bool
}

// Filter wraps base with pred, returning a View whose result streams only
// yield models for which pred(m) is true. It does not rebuild or copy the
// underlying snapshot.
func Filter[M any](base View[M], pred func(M) bool) View[M] {
	return &filterView[M]{base: base, pred: pred}
}

func (v *filterView[M]) SearchStream(query string) iter.Seq[M] {
	return filterSeq(v.base.SearchStream(query), v.pred)
}

func (v *filterView[M]) SearchExactStream(query string) iter.Seq[M] {
	return filterSeq(v.base.SearchExactStream(query), v.pred)
}

func (v *filterView[M]) GetAll() iter.Seq[M] {
	return filterSeq(v.base.GetAll(), v.pred)
}

func filterSeq[M any](seq iter.Seq[M], pred func(M) bool) iter.Seq[M] {
	return func(yield func(M) bool) {
		for m := range seq {
			if pred(m) {
				if !yield(m) {
					return
				}
			}
		}
	}
}

// MappedView is a View transformed by a projection from M to R. Unlike
// Filter, a mapping view changes the element type of the stream, so it is
// not itself a View[M]; callers consume its streams directly.
type MappedView[M, R any] struct {
	base    View[M]
	project func(M) R
}

// Map wraps base with project, returning a MappedView whose result streams
// yield project(m) for every m the base view would have yielded.
func Map[M, R any](base View[M], project func(M) R) *MappedView[M, R] {
	return &MappedView[M, R]{base: base, project: project}
}

func (v *MappedView[M, R]) SearchStream(query string) iter.Seq[R] {
	return mapSeq(v.base.SearchStream(query), v.project)
}

func (v *MappedView[M, R]) SearchExactStream(query string) iter.Seq[R] {
	return mapSeq(v.base.SearchExactStream(query), v.project)
}

func (v *MappedView[M, R]) GetAll() iter.Seq[R] {
	return mapSeq(v.base.GetAll(), v.project)
}

func mapSeq[M, R any](seq iter.Seq[M], project func(M) R) iter.Seq[R] {
	return func(yield func(R) bool) {
		for m := range seq {
			if !yield(project(m)) {
				return
			}
		}
	}
}
