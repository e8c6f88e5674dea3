/*
Package ports defines the driven ports (interfaces) around the machine core.

These interfaces decouple catalogs and transports from external storage, allowing
machines to be kept in memory, on disk, in Redis or in a Loam repository.

# Key Interfaces

  - MachineLoader: Responsible for retrieving machine documents by name.
  - MachineStore: A MachineLoader that can also save and delete documents.
  - DistributedLocker: Provides distributed locking for concurrent writes.

Every implementation should pass RunMachineStoreContract or RunMachineLoaderContract.
*/
package ports
