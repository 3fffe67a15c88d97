package canvas

import (
	"slices"

	"go.uber.org/zap"
)

// index adds o to the tag index under tag.
func (s *Scene) index(o *Object, tag string) {
	if slices.Contains(s.tagIndex[tag], o) {
		return
	}
	s.tagIndex[tag] = append(s.tagIndex[tag], o)
}

// unindex removes o from the tag index under tag.
func (s *Scene) unindex(o *Object, tag string) {
	list := s.tagIndex[tag]
	i := slices.Index(list, o)
	if i < 0 {
		return
	}
	list = slices.Delete(list, i, i+1)
	if len(list) == 0 {
		delete(s.tagIndex, tag)
		return
	}
	s.tagIndex[tag] = list
}

// ObjectsWithTag returns the registered objects carrying tag, in tagging
// order.
func (s *Scene) ObjectsWithTag(tag string) []*Object {
	return slices.Clone(s.tagIndex[tag])
}

// sweep runs o's collision handlers against every object in the tag index
// for each tag o subscribes to. Matches are re-notified on every call; there
// is no enter/stay distinction. Handlers may destroy objects, including o.
func (s *Scene) sweep(o *Object) {
	if len(o.subscribed) == 0 {
		return
	}
	for _, tag := range slices.Clone(o.subscribed) {
		for _, other := range slices.Clone(s.tagIndex[tag]) {
			if o.destroyed {
				return
			}
			if other == o || other.destroyed {
				continue
			}
			s.stats.checks++
			bounds := o.Bounds()
			if !bounds.Overlaps(other.Bounds()) {
				continue
			}
			if s.objects[other.id] != other {
				s.fail(&ColliderError{Self: o.viewID, Tag: tag, OtherID: other.id})
				continue
			}
			fn := o.handlers[tag]
			if fn == nil {
				break
			}
			s.emit(SceneEvent{Type: SceneCollision, ID: o.id, OtherID: other.id, Tag: tag,
				X: bounds.Center.X, Y: bounds.Center.Y})
			fn(o, other)
		}
	}
}

// Overlapping returns the registered objects tagged tag whose bounds overlap
// o, without invoking any handlers.
func (s *Scene) Overlapping(o *Object, tag string) []*Object {
	var out []*Object
	bounds := o.Bounds()
	for _, other := range s.tagIndex[tag] {
		if other == o || other.destroyed || s.objects[other.id] != other {
			continue
		}
		if bounds.Overlaps(other.Bounds()) {
			out = append(out, other)
		}
	}
	return out
}

// fail reports a detector inconsistency to the error handler.
func (s *Scene) fail(err error) {
	if s.onError != nil {
		s.onError(err)
		return
	}
	s.log.Error("collision detector inconsistency", zap.Error(err))
}
