package di_test

import (
	"testing"

	"github.com/sghaida/syncdi/di"
)

type (
	benchDB     struct{ DSN string }
	benchLogger struct{ Level string }
	benchUsers  struct {
		DB     *benchDB
		Logger *benchLogger
	}
)

var (
	benchDBID     = di.CreateDecorator[*benchDB]("bench.db")
	benchLoggerID = di.CreateDecorator[*benchLogger]("bench.logger")
	benchUsersID  = di.CreateDecorator[*benchUsers]("bench.users")
)

/*
   Shared helpers (NOT counted in benchmarks)
*/

var (
	newBenchDB = di.Ctor0("DB", func() (*benchDB, error) {
		return &benchDB{DSN: "postgres"}, nil
	})
	newBenchLogger = di.Ctor0("Logger", func() (*benchLogger, error) {
		return &benchLogger{Level: "info"}, nil
	})
	newBenchUsers = di.Ctor2("Users", func(db *benchDB, l *benchLogger) (*benchUsers, error) {
		return &benchUsers{DB: db, Logger: l}, nil
	}).Inject(0, benchDBID).Inject(1, benchLoggerID)
)

func benchInstances() *di.ServiceCollection {
	return di.NewServiceCollection(
		di.Pair(benchDBID, &benchDB{DSN: "postgres"}),
		di.Pair(benchLoggerID, &benchLogger{Level: "info"}),
	)
}

func benchDescriptors() *di.ServiceCollection {
	return di.NewServiceCollection(
		di.Pair(benchDBID, di.Describe(newBenchDB)),
		di.Pair(benchLoggerID, di.Describe(newBenchLogger)),
		di.Pair(benchUsersID, di.Describe(newBenchUsers)),
	)
}

/*
   Benchmarks
*/

func BenchmarkCreateInstance_NoDependencies(b *testing.B) {
	s := di.NewInstantiationService(nil)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = di.CreateInstance(s, newBenchDB)
	}
}

func BenchmarkCreateInstance_TwoInstances(b *testing.B) {
	s := di.NewInstantiationService(benchInstances())

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = di.CreateInstance(s, newBenchUsers)
	}
}

func BenchmarkCreateInstance_ColdDescriptors(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		s := di.NewInstantiationService(benchDescriptors())
		b.StartTimer()

		_, _ = di.CreateInstance(s, newBenchUsers)
	}
}

func BenchmarkInvokeFunction_Get(b *testing.B) {
	s := di.NewInstantiationService(benchDescriptors())

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = di.Invoke(s, func(a di.ServicesAccessor) (*benchUsers, error) {
			return di.Get(a, benchUsersID)
		})
	}
}

func BenchmarkCreateInstance_Missing(b *testing.B) {
	s := di.NewInstantiationService(nil)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = di.CreateInstance(s, newBenchUsers) // MissingServiceError path
	}
}

func BenchmarkServiceCollection_Set(b *testing.B) {
	c := di.NewServiceCollection()
	db := &benchDB{}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Set(benchDBID, db)
	}
}
