// Package secret resolves credentials referenced from probe configuration.
//
// It supports:
//   - Strict environment expansion (see ExpandEnvStrict)
//   - Pluggable secret providers (see Provider and Registry)
//   - Resolving secret references in configuration values (see Resolver)
//
// References use the prefix "secretref:":
//   - Full value:  secretref:file:/run/secrets/pg_dsn
//   - Inline use:  redis://:secretref:env:REDIS_PASSWORD@cache:6379/0
//
// Two providers are built in: "env" reads environment variables and "file"
// reads mounted secret files such as Docker or Kubernetes secrets.
package secret
