package mocks

//go:generate mockery --name RecordStore --srcpkg github.com/aevon-lab/salary-crossfilter/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Sessions --srcpkg github.com/aevon-lab/salary-crossfilter/internal/dashboard --output ./dashboard --outpkg dashboardmocks --with-expecter
