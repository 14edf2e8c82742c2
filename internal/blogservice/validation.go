package blogservice

import (
	"github.com/sushihentaime/bloglist/internal/common"
)

func validateBlog(v *common.Validator, title, url string, likes int) {
	v.Check(title != "", "title", "title missing")
	v.Check(url != "", "url", "url missing")
	v.Check(likes >= 0, "likes", "likes must not be negative")
}

func validateID(v *common.Validator, id, name string) {
	v.Check(id != "", name, "must be provided")
}
