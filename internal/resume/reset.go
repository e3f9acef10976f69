package resume

// Reset empties all resume content and clears the submitted flag. The returned
// path is the previously stored image, if any, for deletion.
func Reset(r Record) (Record, string) {
	stale := r.Image
	r.Content = Content{}.clone()
	return r, stale
}
