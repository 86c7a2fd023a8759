// Package di is a synchronous dependency injection container.
//
// Services are named by typed identifiers, bound in a ServiceCollection either
// as live instances or as descriptors, and built on demand by an
// InstantiationService that injects declared dependencies by parameter
// position.
//
// The pieces, leaves first:
//
//   - ServiceID: a process-wide token created with CreateDecorator.
//   - Constructor: a build function plus the positional services it needs
//     (Inject, Optional, InjectLazy).
//   - ServiceCollection: identifier to instance or descriptor bindings.
//   - Descriptor: an inert recipe of constructor, fixed leading arguments and
//     a delay flag.
//   - InstantiationService: resolves dependencies recursively, promotes
//     descriptors to singletons, rejects cycles, and scopes ad hoc lookups to
//     one InvokeFunction call.
//
// Example
//
//	var (
//		LogService     = di.CreateDecorator[Logger]("logService")
//		StorageService = di.CreateDecorator[*Storage]("storageService")
//	)
//
//	var newStorage = di.Ctor2("Storage", NewStorage).Inject(1, LogService)
//
//	services := di.NewServiceCollection(
//		di.Pair(LogService, logger),
//		di.Pair(StorageService, di.Describe(newStorage, "/var/lib/app")),
//	)
//	inst := di.NewInstantiationService(services)
//	storage, err := di.Invoke(inst, func(a di.ServicesAccessor) (*Storage, error) {
//		return di.Get(a, StorageService)
//	})
//
// Nothing in this package starts goroutines or blocks. A container family
// (a root and its children) must be used from one goroutine at a time.
//
// Import
//
//	"github.com/sghaida/syncdi/di"
package di
