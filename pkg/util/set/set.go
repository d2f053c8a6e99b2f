package set

type Set[T comparable] struct {
	_map map[T]struct{}
}

func New[T comparable](vals ...T) Set[T] {
	s := Set[T]{make(map[T]struct{}, len(vals))}
	for _, v := range vals {
		s.Insert(v)
	}
	return s
}

func (s *Set[T]) Insert(val T) {
	s._map[val] = struct{}{}
}

func (s *Set[T]) Delete(val T) {
	delete(s._map, val)
}

func (s Set[T]) Contains(val T) bool {
	_, contained := s._map[val]
	return contained
}

func (s Set[T]) Len() int {
	return len(s._map)
}
