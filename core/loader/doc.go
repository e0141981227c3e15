// Package loader mounts features on the fiber app.
//
// A feature bundles a service with its routes and implements Feature. The
// Manager keeps them in registration order; LoadAll skips disabled features
// and returns the names it mounted.
//
//	mgr := loader.NewManager()
//	mgr.Register(session.NewFeature(sessions))
//	mgr.Register(comparisons)
//	loaded, err := mgr.LoadAll(app)
package loader
